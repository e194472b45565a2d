// Package errs defines the error kinds surfaced by the engine and glues
// them to process exit codes via go-errcat categories.
package errs

import (
	"fmt"

	"github.com/warpfork/go-errcat"
)

// Category identifies one of the error kinds a command can fail with.
type Category string

const (
	NotTrackedRoot     Category = "not-tracked-root"
	AlreadyTrackedRoot Category = "already-tracked-root"
	InvalidBranchName  Category = "invalid-branch-name"
	BranchExists       Category = "branch-exists"
	UnknownBranch      Category = "unknown-branch"
	BranchInUse        Category = "branch-in-use"
	UnknownRef         Category = "unknown-ref"
	AmbiguousRef       Category = "ambiguous-ref"
	MissingRef         Category = "missing-ref"
	NoCommitsYet       Category = "no-commits-yet"
	DirtyWorkingTree   Category = "dirty-working-tree"
	CorruptHistory     Category = "corrupt-history"
	SnapshotToolFailed Category = "snapshot-tool-failed"
	StoreBusy          Category = "store-busy"
	Usage              Category = "usage"
)

// Errorf builds a plain categorized error carrying only a message.
func Errorf(cat Category, format string, args ...interface{}) error {
	return errcat.Errorf(cat, format, args...)
}

// CategoryOf extracts the Category of err, if err carries one. Any error
// with a Category method qualifies, so the payload types below are read
// the same way as errors built by Errorf.
func CategoryOf(err error) (Category, bool) {
	ec, ok := err.(interface{ Category() interface{} })
	if !ok {
		return "", false
	}
	cat, ok := ec.Category().(Category)
	return cat, ok
}

// DirtyTreeError is DirtyWorkingTree with the offending path list attached.
type DirtyTreeError struct {
	Paths []string
}

func (e *DirtyTreeError) Error() string {
	return fmt.Sprintf("working tree is dirty (%d path(s) changed); use --force to override", len(e.Paths))
}

func (e *DirtyTreeError) Category() interface{} { return DirtyWorkingTree }

// AmbiguousRefError is AmbiguousRef with the candidate commit ids attached.
type AmbiguousRefError struct {
	Ref        string
	Candidates []string
}

func (e *AmbiguousRefError) Error() string {
	return fmt.Sprintf("ref %q is ambiguous: matches %d commits", e.Ref, len(e.Candidates))
}

func (e *AmbiguousRefError) Category() interface{} { return AmbiguousRef }

// SnapshotToolError is SnapshotToolFailed with the subprocess exit info attached.
type SnapshotToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *SnapshotToolError) Error() string {
	return fmt.Sprintf("archive tool exited %d running %v: %s", e.ExitCode, e.Args, e.Stderr)
}

func (e *SnapshotToolError) Category() interface{} { return SnapshotToolFailed }

// ExitCode maps a Category to a process exit code. Categories not listed
// here (including "no category", i.e. plain Go errors) fall back to 1.
func ExitCode(cat Category) int {
	switch cat {
	case NotTrackedRoot:
		return 10
	case AlreadyTrackedRoot:
		return 11
	case InvalidBranchName:
		return 12
	case BranchExists:
		return 13
	case UnknownBranch:
		return 14
	case BranchInUse:
		return 15
	case UnknownRef:
		return 16
	case AmbiguousRef:
		return 17
	case MissingRef:
		return 18
	case NoCommitsYet:
		return 19
	case DirtyWorkingTree:
		return 20
	case CorruptHistory:
		return 21
	case SnapshotToolFailed:
		return 22
	case StoreBusy:
		return 23
	case Usage:
		return 2
	default:
		return 1
	}
}
