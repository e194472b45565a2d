package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/history"
	"github.com/keshon/vaultkeep/internal/refs"
	"github.com/keshon/vaultkeep/internal/report"
	"github.com/keshon/vaultkeep/internal/store"
)

func newBranchCmd() *cobra.Command {
	var deleteFlag bool
	var force bool
	cmd := &cobra.Command{
		Use:   "branch [name] [ref]",
		Short: "list, create, or delete branches",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, r, release, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if deleteFlag {
				if len(args) == 0 {
					return errs.Errorf(errs.Usage, "branch -d requires a branch name")
				}
				if force {
					return errs.Errorf(errs.Usage, "branch -d does not accept -f/--force")
				}
				if len(args) == 2 {
					return errs.Errorf(errs.Usage, "branch -d does not accept a ref argument")
				}
				head, err := history.LoadHead(s)
				if err != nil {
					return err
				}
				if err := history.DeleteBranch(s, args[0], head); err != nil {
					return err
				}
				printf(r, "deleted branch %s", args[0])
				return nil
			}

			if len(args) >= 1 {
				ref := "HEAD"
				if len(args) == 2 {
					ref = args[1]
				}
				commit, err := refs.Resolve(s, ref)
				if err != nil {
					return err
				}
				if err := history.SetBranch(s, args[0], commit, force); err != nil {
					return err
				}
				printf(r, "created branch %s at %s", args[0], commit[:7])
				return nil
			}

			return listBranches(s, r)
		},
	}
	cmd.Flags().BoolVarP(&deleteFlag, "delete", "d", false, "delete the named branch")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing branch")
	return cmd
}

func listBranches(s *store.Store, r report.Reporter) error {
	names, err := history.ListBranches(s)
	if err != nil {
		return err
	}
	head, err := history.LoadHead(s)
	if err != nil {
		return err
	}
	for _, name := range names {
		target, err := history.BranchTarget(s, name)
		if err != nil {
			return err
		}
		current := head.Kind == history.Attached && head.Branch == name
		r.BranchRow(report.BranchRow{Name: name, Commit: target[:7], Current: current})
	}
	return nil
}
