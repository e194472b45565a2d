package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/history"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show HEAD and whether the working tree has uncommitted changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			head, err := history.LoadHead(s)
			if err != nil {
				return err
			}
			switch head.Kind {
			case history.Attached:
				printf(r, "on branch %s", head.Branch)
			case history.Detached:
				printf(r, "HEAD detached at %s", head.Commit[:7])
			}

			dirty, err := ctrl.DirtyPaths(cmd.Context())
			if err != nil {
				return err
			}
			if len(dirty) == 0 {
				r.Info("working tree clean")
				return nil
			}
			printf(r, "%d path(s) changed since HEAD:", len(dirty))
			for _, p := range dirty {
				r.Info("  " + p)
			}
			return nil
		},
	}
}
