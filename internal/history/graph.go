// Package history maintains the commit map, branch map, and HEAD
// pointer that together form the snapshot graph: an id-to-commit
// mapping and a name-to-id branch map, with no back-pointers, since
// parent edges already form a forest.
package history

import (
	"context"
	"time"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/idgen"
	"github.com/keshon/vaultkeep/internal/snapshot"
	"github.com/keshon/vaultkeep/internal/store"
)

// CurrentCommit resolves HEAD to the commit id it currently points at.
// An attached HEAD whose branch has not been created yet (the
// freshly-initialized transient state) fails with NoCommitsYet.
func CurrentCommit(s *store.Store, head Head) (string, error) {
	switch head.Kind {
	case Attached:
		if !BranchExists(s, head.Branch) {
			return "", errs.Errorf(errs.NoCommitsYet, "branch %q has no commits yet", head.Branch)
		}
		return BranchTarget(s, head.Branch)
	case Detached:
		return head.Commit, nil
	default:
		return "", errs.Errorf(errs.CorruptHistory, "HEAD has unknown kind")
	}
}

// Ancestors walks the parent chain of id back to its root commit and
// returns them ordered root-first. Fails with CorruptHistory if a
// parent id is dangling.
func Ancestors(s *store.Store, id string) ([]string, error) {
	var chain []string
	seen := map[string]bool{}
	cur := id
	for cur != "" {
		if seen[cur] {
			return nil, errs.Errorf(errs.CorruptHistory, "cycle detected reaching commit %s", cur)
		}
		seen[cur] = true
		c, err := LoadCommit(s, cur)
		if err != nil {
			return nil, err
		}
		chain = append(chain, cur)
		cur = c.Parent
	}
	// reverse to root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// CreateCommit implements the history graph's create_commit operation:
// it reads current HEAD, determines the parent (root commit if HEAD's
// attached branch has no commits yet), asks the snapshot engine to
// publish the delta, persists the commit record, and advances HEAD
// (the attached branch, or HEAD itself when detached).
func CreateCommit(ctx context.Context, s *store.Store, engine *snapshot.Engine, message string) (id string, touched []string, err error) {
	head, err := LoadHead(s)
	if err != nil {
		return "", nil, err
	}

	var parent string
	switch head.Kind {
	case Attached:
		if BranchExists(s, head.Branch) {
			parent, err = BranchTarget(s, head.Branch)
			if err != nil {
				return "", nil, err
			}
		}
	case Detached:
		parent = head.Commit
	}

	now := time.Now()
	newID := idgen.NewCommitID(parent, message, now.UnixNano())

	touched, err = engine.Capture(ctx, s, parent, newID)
	if err != nil {
		return "", nil, err
	}

	commit := &Commit{ID: newID, Parent: parent, Message: message, Timestamp: now}
	if err := SaveCommit(s, commit); err != nil {
		return "", nil, err
	}

	switch head.Kind {
	case Attached:
		if err := SetBranch(s, head.Branch, newID, true); err != nil {
			return "", nil, err
		}
	case Detached:
		if err := SaveHead(s, DetachedAt(newID)); err != nil {
			return "", nil, err
		}
	}

	return newID, touched, nil
}
