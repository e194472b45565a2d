package cli

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	var force bool
	var orphan string
	cmd := &cobra.Command{
		Use:   "checkout [ref]",
		Short: "move HEAD (and the working tree) to a branch or commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ref string
			if len(args) == 1 {
				ref = args[0]
			}
			_, ctrl, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := ctrl.Checkout(cmd.Context(), ref, force, orphan != "", orphan, r); err != nil {
				return err
			}
			if orphan != "" {
				printf(r, "switched to new branch %s", orphan)
			} else {
				printf(r, "switched to %s", ref)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "discard uncommitted changes")
	cmd.Flags().StringVar(&orphan, "orphan", "", "create and switch to a new unborn branch")
	return cmd
}
