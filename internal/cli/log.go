package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/worktree"
)

func newLogCmd() *cobra.Command {
	var all bool
	var full bool
	cmd := &cobra.Command{
		Use:   "log [ref...]",
		Short: "show commit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			groups, err := ctrl.Log(cmd.Context(), args, all)
			if err != nil {
				return err
			}
			worktree.Emit(r, groups, full)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show every branch's history")
	cmd.Flags().BoolVar(&full, "full", false, "print the full commit message body")
	return cmd
}
