package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [ref]",
		Short: "list the paths a commit touches",
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

			paths, err := ctrl.Show(cmd.Context(), ref)
			if err != nil {
				return err
			}
			for _, p := range paths {
				r.Info(p)
			}
			return nil
		},
	}
}
