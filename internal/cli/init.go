package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/report"
	"github.com/keshon/vaultkeep/internal/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "start tracking the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := store.ResolveRoot()
			if err != nil {
				return err
			}
			if _, err := store.Init(root); err != nil {
				return err
			}
			report.New(verbosity()).Info("initialized tracked root at " + root)
			return nil
		},
	}
}
