// Package refs resolves user-supplied reference strings (branch names,
// full or prefix commit ids, and the HEAD synonym) to commit ids.
package refs

import (
	"strings"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/history"
	"github.com/keshon/vaultkeep/internal/idgen"
	"github.com/keshon/vaultkeep/internal/store"
)

// Resolve turns ref into a commit id following the resolution order:
// exact branch name, exact full commit id, unique hex prefix, or
// the literal token HEAD (a synonym for HEAD's current target).
func Resolve(s *store.Store, ref string) (string, error) {
	if ref == "" {
		return "", errs.Errorf(errs.MissingRef, "no reference given")
	}

	if ref == "HEAD" {
		head, err := history.LoadHead(s)
		if err != nil {
			return "", err
		}
		return history.CurrentCommit(s, head)
	}

	if history.BranchExists(s, ref) {
		return history.BranchTarget(s, ref)
	}

	if idgen.IsFullID(ref) && history.CommitExists(s, ref) {
		return ref, nil
	}

	if idgen.IsHexPrefix(ref) {
		matches, err := matchingPrefix(s, ref)
		if err != nil {
			return "", err
		}
		switch len(matches) {
		case 0:
			return "", errs.Errorf(errs.UnknownRef, "no commit matches %q", ref)
		case 1:
			return matches[0], nil
		default:
			return "", &errs.AmbiguousRefError{Ref: ref, Candidates: matches}
		}
	}

	return "", errs.Errorf(errs.UnknownRef, "%q does not name a branch or commit", ref)
}

func matchingPrefix(s *store.Store, prefix string) ([]string, error) {
	ids, err := history.ListCommitIDs(s)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	return matches, nil
}
