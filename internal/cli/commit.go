package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/history"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <msg>",
		Short: "record the current state of the tracked root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := args[0]
			s, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			id, touched, err := history.CreateCommit(cmd.Context(), s, ctrl.Engine, message)
			if err != nil {
				return err
			}
			printf(r, "created commit %s (%d path(s) changed)", id[:7], len(touched))
			for _, p := range touched {
				r.Info("  " + p)
			}
			return nil
		},
	}
	return cmd
}
