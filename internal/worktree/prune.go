package worktree

import (
	"context"
	"os"

	"github.com/keshon/vaultkeep/internal/history"
)

// Prune removes every commit unreachable from any branch or from
// HEAD's current commit (relevant only for a detached HEAD, whose
// commit might not be on any branch), and returns the ids removed.
func (c *Controller) Prune(ctx context.Context) ([]string, error) {
	reachable, err := c.reachableSet()
	if err != nil {
		return nil, err
	}

	ids, err := history.ListCommitIDs(c.Store)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, id := range ids {
		if reachable[id] {
			continue
		}
		if err := os.Remove(c.Store.ArchivePath(id)); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		if err := os.Remove(c.Store.StatePath(id)); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		if err := history.DeleteCommit(c.Store, id); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed = append(removed, id)
	}
	return removed, nil
}

// reachableSet is the union of every branch's full ancestor chain plus
// HEAD's current commit's ancestor chain, if HEAD resolves at all.
// Prune never removes a commit reachable this way, so it can never
// discard history a later checkout, reset, or log could still reach.
func (c *Controller) reachableSet() (map[string]bool, error) {
	reachable := map[string]bool{}

	branches, err := history.ListBranches(c.Store)
	if err != nil {
		return nil, err
	}
	for _, name := range branches {
		target, err := history.BranchTarget(c.Store, name)
		if err != nil {
			return nil, err
		}
		chain, err := history.Ancestors(c.Store, target)
		if err != nil {
			return nil, err
		}
		for _, id := range chain {
			reachable[id] = true
		}
	}

	head, err := history.LoadHead(c.Store)
	if err == nil {
		if commit, err := history.CurrentCommit(c.Store, head); err == nil {
			chain, err := history.Ancestors(c.Store, commit)
			if err != nil {
				return nil, err
			}
			for _, id := range chain {
				reachable[id] = true
			}
		}
	}

	return reachable, nil
}
