// Package cli assembles the vaultkeep command surface on top of cobra,
// wiring each subcommand to a store, a snapshot engine, and a reporter.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/report"
	"github.com/keshon/vaultkeep/internal/snapshot"
	"github.com/keshon/vaultkeep/internal/store"
	"github.com/keshon/vaultkeep/internal/worktree"
)

var (
	flagVerbose bool
	flagQuiet   bool
)

// NewRootCmd builds the vaultkeep root command with every subcommand
// attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vaultkeep",
		Short:         "vaultkeep tracks a directory tree as a local commit history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagVerbose && flagQuiet {
				return errs.Errorf(errs.Usage, "--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print every applied step")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only print warnings and errors")

	root.AddCommand(
		newInitCmd(),
		newCommitCmd(),
		newCheckoutCmd(),
		newResetCmd(),
		newBranchCmd(),
		newShowCmd(),
		newStatusCmd(),
		newLogCmd(),
		newPruneCmd(),
	)
	return root
}

// verbosity derives the reporter's Verbosity from the persistent flags.
func verbosity() report.Verbosity {
	switch {
	case flagQuiet:
		return report.Quiet
	case flagVerbose:
		return report.Verbose
	default:
		return report.Normal
	}
}

// openStore resolves the tracked root and opens it, returning a ready
// controller and reporter. Callers must call release when done.
func openStore(ctx context.Context) (*store.Store, *worktree.Controller, report.Reporter, func(), error) {
	root, err := store.ResolveRoot()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	s, err := store.Open(root)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := s.Lock(); err != nil {
		return nil, nil, nil, nil, err
	}
	release := func() { _ = s.Unlock() }

	engine := snapshot.New()
	ctrl := worktree.New(s, engine)
	r := report.New(verbosity())
	return s, ctrl, r, release, nil
}

func printf(r report.Reporter, format string, args ...interface{}) {
	r.Info(fmt.Sprintf(format, args...))
}
