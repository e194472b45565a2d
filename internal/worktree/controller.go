// Package worktree implements the working-tree controller: the
// operations that move files between the tracked root and the commit
// graph (checkout, reset, show) and the read-only queries built on top
// of it (dirty detection, log, prune).
package worktree

import (
	"context"
	"os"
	"path/filepath"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/history"
	"github.com/keshon/vaultkeep/internal/idgen"
	"github.com/keshon/vaultkeep/internal/refs"
	"github.com/keshon/vaultkeep/internal/report"
	"github.com/keshon/vaultkeep/internal/snapshot"
	"github.com/keshon/vaultkeep/internal/store"
)

// Controller binds a store and a snapshot engine to run the
// working-tree operations against.
type Controller struct {
	Store  *store.Store
	Engine *snapshot.Engine
}

// New returns a Controller over s using engine.
func New(s *store.Store, engine *snapshot.Engine) *Controller {
	return &Controller{Store: s, Engine: engine}
}

// DirtyPaths reports which paths in the working tree differ from
// HEAD's current commit, without touching any persisted state. A
// store with no commits yet is never dirty in the sense checkout and
// reset care about: there is nothing to lose.
func (c *Controller) DirtyPaths(ctx context.Context) ([]string, error) {
	head, err := history.LoadHead(c.Store)
	if err != nil {
		return nil, err
	}
	parent, err := history.CurrentCommit(c.Store, head)
	if err != nil {
		if cat, ok := errs.CategoryOf(err); ok && cat == errs.NoCommitsYet {
			return nil, nil
		}
		return nil, err
	}
	return c.Engine.Preview(ctx, c.Store, parent)
}

// Checkout moves HEAD (and, if destructive, the working tree) to ref.
// If orphanRequested, it instead creates a new unborn branch named
// orphanName and attaches HEAD to it with no filesystem changes.
func (c *Controller) Checkout(ctx context.Context, ref string, force, orphanRequested bool, orphanName string, r report.Reporter) error {
	if orphanRequested {
		return c.checkoutOrphan(orphanName)
	}

	target, err := refs.Resolve(c.Store, ref)
	if err != nil {
		return err
	}

	attach := history.BranchExists(c.Store, ref)

	head, err := history.LoadHead(c.Store)
	if err != nil {
		return err
	}
	currentCommit, err := history.CurrentCommit(c.Store, head)
	alreadyThere := err == nil && currentCommit == target

	if alreadyThere {
		// Same commit: still honor an attach/detach change of form.
		if attach {
			if head.Kind == history.Attached && head.Branch == ref {
				return nil
			}
			return history.SaveHead(c.Store, history.AttachedTo(ref))
		}
		if head.Kind == history.Detached && head.Commit == target {
			return nil
		}
		return history.SaveHead(c.Store, history.DetachedAt(target))
	}

	if !force {
		dirty, err := c.DirtyPaths(ctx)
		if err != nil {
			return err
		}
		if len(dirty) > 0 {
			return &errs.DirtyTreeError{Paths: dirty}
		}
	}

	if err := c.replayTo(ctx, target, r); err != nil {
		return err
	}

	if attach {
		return history.SaveHead(c.Store, history.AttachedTo(ref))
	}
	return history.SaveHead(c.Store, history.DetachedAt(target))
}

// checkoutOrphan creates an unborn branch and attaches HEAD to it. No
// commit exists yet, so nothing in the working tree changes; the next
// commit made on this branch will be a root commit.
func (c *Controller) checkoutOrphan(name string) error {
	if err := idgen.ValidateBranchName(name); err != nil {
		return err
	}
	if history.BranchExists(c.Store, name) {
		return errs.Errorf(errs.BranchExists, "branch %q already exists", name)
	}
	return history.SaveHead(c.Store, history.AttachedTo(name))
}

// replayTo wipes the working tree (except the control directory) and
// replays target's full ancestor chain onto it in order. It is shared
// by Checkout's destructive path and Reset's --hard path.
func (c *Controller) replayTo(ctx context.Context, target string, r report.Reporter) error {
	chain, err := history.Ancestors(c.Store, target)
	if err != nil {
		return err
	}
	if err := wipeWorkingTree(c.Store); err != nil {
		return err
	}
	for _, id := range chain {
		if err := c.Engine.Extract(ctx, c.Store, id); err != nil {
			return err
		}
		if r != nil {
			r.Info("applied " + id[:7])
		}
	}
	return nil
}

// Reset moves the current branch (or detached HEAD) to ref. With hard,
// the working tree is replayed to match; without it, only the pointer
// moves and the working tree is left untouched.
func (c *Controller) Reset(ctx context.Context, ref string, hard, force bool, r report.Reporter) error {
	target, err := refs.Resolve(c.Store, ref)
	if err != nil {
		return err
	}

	if hard && !force {
		dirty, err := c.DirtyPaths(ctx)
		if err != nil {
			return err
		}
		if len(dirty) > 0 {
			return &errs.DirtyTreeError{Paths: dirty}
		}
	}

	head, err := history.LoadHead(c.Store)
	if err != nil {
		return err
	}
	switch head.Kind {
	case history.Attached:
		if err := history.SetBranch(c.Store, head.Branch, target, true); err != nil {
			return err
		}
	case history.Detached:
		if err := history.SaveHead(c.Store, history.DetachedAt(target)); err != nil {
			return err
		}
	}

	if hard {
		return c.replayTo(ctx, target, r)
	}
	return nil
}

// Show lists the paths ref's commit touches, defaulting to HEAD.
func (c *Controller) Show(ctx context.Context, ref string) ([]string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	target, err := refs.Resolve(c.Store, ref)
	if err != nil {
		return nil, err
	}
	return c.Engine.ListPaths(ctx, c.Store, target)
}

// wipeWorkingTree removes every entry directly under s.Root except the
// control directory.
func wipeWorkingTree(s *store.Store) error {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == store.ControlDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.Root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
