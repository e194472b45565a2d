package history

import (
	"os"
	"sort"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/idgen"
	"github.com/keshon/vaultkeep/internal/store"
)

func branchPath(s *store.Store, name string) string {
	return s.BranchesDir() + "/" + name
}

// BranchExists reports whether name has a branch pointer file.
func BranchExists(s *store.Store, name string) bool {
	_, err := os.Stat(branchPath(s, name))
	return err == nil
}

// BranchTarget returns the commit id name points at, failing with
// UnknownBranch if the branch does not exist.
func BranchTarget(s *store.Store, name string) (string, error) {
	data, err := os.ReadFile(branchPath(s, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.Errorf(errs.UnknownBranch, "branch %q does not exist", name)
		}
		return "", err
	}
	return string(data), nil
}

// ListBranches returns every branch name, sorted.
func ListBranches(s *store.Store) ([]string, error) {
	entries, err := os.ReadDir(s.BranchesDir())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SetBranch creates or moves a branch to target. Creating over an
// existing name without force fails with BranchExists. Moving the
// branch HEAD is attached to is always permitted.
func SetBranch(s *store.Store, name, target string, force bool) error {
	if err := idgen.ValidateBranchName(name); err != nil {
		return err
	}
	if !CommitExists(s, target) {
		return errs.Errorf(errs.CorruptHistory, "cannot point branch %q at unknown commit %s", name, target)
	}
	if BranchExists(s, name) && !force {
		return errs.Errorf(errs.BranchExists, "branch %q already exists", name)
	}
	return store.WriteFileAtomic(branchPath(s, name), []byte(target))
}

// DeleteBranch removes a branch. Refuses to delete the branch HEAD is
// attached to, and refuses unknown names.
func DeleteBranch(s *store.Store, name string, head Head) error {
	if head.Kind == Attached && head.Branch == name {
		return errs.Errorf(errs.BranchInUse, "cannot delete branch %q: HEAD is attached to it", name)
	}
	if !BranchExists(s, name) {
		return errs.Errorf(errs.UnknownBranch, "branch %q does not exist", name)
	}
	return os.Remove(branchPath(s, name))
}
