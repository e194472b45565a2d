// Package snapshot wraps the external incremental archive tool (GNU
// tar's --listed-incremental mode) that the engine treats as a black
// box: given a prior snapshot-state blob, produce an archive of the
// delta plus a new snapshot-state blob, or replay an archive onto the
// working tree.
package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/keshon/vaultkeep/internal/store"
)

// Engine is the snapshot engine: capture, extract, and list_paths.
type Engine struct{}

// New returns a snapshot engine bound to the external tar binary.
func New() *Engine { return &Engine{} }

// Capture produces an incremental archive of s.Root against parentID's
// snapshot-state blob (or an empty state for a root commit), and
// atomically publishes the archive and new state blob under newID. It
// returns the list of paths the archive tool reports as changed.
//
// The working tree is read, never modified. A capture that cannot be
// published atomically is rolled back: no trace of newID is left, and
// no commit record should be written by the caller.
func (e *Engine) Capture(ctx context.Context, s *store.Store, parentID, newID string) ([]string, error) {
	tmpArchive, err := os.CreateTemp(s.CommitsDir(), ".tmp-archive-*")
	if err != nil {
		return nil, err
	}
	tmpArchivePath := tmpArchive.Name()
	tmpArchive.Close()
	defer os.Remove(tmpArchivePath)

	tmpStatePath := tmpArchivePath + ".snar"
	defer os.Remove(tmpStatePath)

	if parentID != "" {
		parentState, err := os.ReadFile(s.StatePath(parentID))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(tmpStatePath, parentState, 0o644); err != nil {
			return nil, err
		}
	}
	// For a root commit, tmpStatePath does not exist yet; tar creates a
	// fresh level-0 snapshot file the first time it sees a missing path.

	args := []string{
		"--create",
		"--listed-incremental=" + tmpStatePath,
		"--file=" + tmpArchivePath,
		"--exclude=./" + store.ControlDirName,
		".",
	}
	if _, err := runTar(ctx, s.Root, args...); err != nil {
		return nil, err
	}

	touched, err := listArchivePaths(ctx, tmpArchivePath)
	if err != nil {
		return nil, err
	}

	if err := publish(tmpArchivePath, s.ArchivePath(newID)); err != nil {
		os.Remove(s.ArchivePath(newID))
		return nil, err
	}
	if err := publish(tmpStatePath, s.StatePath(newID)); err != nil {
		os.Remove(s.ArchivePath(newID))
		os.Remove(s.StatePath(newID))
		return nil, err
	}

	return touched, nil
}

// Preview runs the same capture the next commit would run, against
// parentID's snapshot-state blob, but discards both the archive and the
// updated state blob instead of publishing them. It is used for
// dirty-tree detection: callers need to know which paths would be
// touched by a commit without perturbing the state a real commit would
// consume next.
func (e *Engine) Preview(ctx context.Context, s *store.Store, parentID string) ([]string, error) {
	tmpArchive, err := os.CreateTemp(s.CommitsDir(), ".tmp-preview-*")
	if err != nil {
		return nil, err
	}
	tmpArchivePath := tmpArchive.Name()
	tmpArchive.Close()
	defer os.Remove(tmpArchivePath)

	tmpStatePath := tmpArchivePath + ".snar"
	defer os.Remove(tmpStatePath)

	if parentID != "" {
		parentState, err := os.ReadFile(s.StatePath(parentID))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(tmpStatePath, parentState, 0o644); err != nil {
			return nil, err
		}
	}

	args := []string{
		"--create",
		"--listed-incremental=" + tmpStatePath,
		"--file=" + tmpArchivePath,
		"--exclude=./" + store.ControlDirName,
		".",
	}
	if _, err := runTar(ctx, s.Root, args...); err != nil {
		return nil, err
	}

	return listArchivePaths(ctx, tmpArchivePath)
}

// publish renames a temp file into its final location. On most
// filesystems this is the atomic step; renaming across a temp file
// already living beside the destination avoids cross-device rename
// failures.
func publish(tmpPath, finalPath string) error {
	return os.Rename(tmpPath, finalPath)
}

// Extract replays the archive blob named id into the tracked root,
// overwriting files and creating directories as needed. It performs no
// parent replay: the caller sequences the full ancestor chain.
func (e *Engine) Extract(ctx context.Context, s *store.Store, id string) error {
	_, err := runTar(ctx, s.Root, "--extract", "--file="+s.ArchivePath(id))
	return err
}

// ListPaths returns the paths the archive blob named id touches,
// without modifying the filesystem.
func (e *Engine) ListPaths(ctx context.Context, s *store.Store, id string) ([]string, error) {
	return listArchivePaths(ctx, s.ArchivePath(id))
}

// listArchivePaths lists the members of the archive at archivePath and
// filters out directory entries: GNU incremental tar always lists the
// unchanged parent directories of any changed file for structural
// reasons, so a raw member list overstates what actually changed. This
// is the concrete shape of the "first commit after checkout looks like
// a full re-snapshot" limitation: the filter can't distinguish a
// directory listed because it changed from one listed only for shape.
func listArchivePaths(ctx context.Context, archivePath string) ([]string, error) {
	out, err := runTar(ctx, filepath.Dir(archivePath), "--list", "--file="+archivePath)
	if err != nil {
		return nil, err
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasSuffix(line, "/") || line == "." {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, err
	}
	return paths, nil
}
