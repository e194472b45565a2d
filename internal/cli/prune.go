package cli

import (
	"github.com/spf13/cobra"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "remove commits unreachable from any branch or HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			removed, err := ctrl.Prune(cmd.Context())
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				r.Info("nothing to prune")
				return nil
			}
			printf(r, "removed %d unreachable commit(s)", len(removed))
			for _, id := range removed {
				r.Info("  " + id[:7])
			}
			return nil
		},
	}
}
