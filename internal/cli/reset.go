package cli

import (
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var hard bool
	var force bool
	cmd := &cobra.Command{
		Use:   "reset <ref>",
		Short: "move the current branch (or detached HEAD) to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := ctrl.Reset(cmd.Context(), args[0], hard, force, r); err != nil {
				return err
			}
			printf(r, "reset to %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "also replay the working tree")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "discard uncommitted changes")
	return cmd
}
