package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/history"
	"github.com/keshon/vaultkeep/internal/snapshot"
	"github.com/keshon/vaultkeep/internal/store"
	"github.com/stretchr/testify/require"
)

// installFakeTar mirrors the shim in the snapshot package's own tests,
// duplicated here (as a small unexported helper) since tarPath is not
// exported across package boundaries.
func installFakeTar(t *testing.T) {
	t.Helper()
	script := `#!/bin/sh
set -e
mode=""
archive=""
snar=""
for arg in "$@"; do
  case "$arg" in
    --create) mode=create ;;
    --extract) mode=extract ;;
    --list) mode=list ;;
    --file=*) archive="${arg#--file=}" ;;
    --listed-incremental=*) snar="${arg#--listed-incremental=}" ;;
  esac
done
case "$mode" in
  create)
    : > "$archive"
    newmanifest=$(mktemp)
    find . -type f -not -path './.vault/*' | while read -r f; do
      rel=$(printf '%s' "$f" | sed 's|^\./||')
      sig="$rel $(stat -c '%s %Y' "$f")"
      echo "$sig" >> "$newmanifest"
      if [ -f "$snar" ] && grep -qxF "$sig" "$snar"; then continue; fi
      b64=$(base64 -w0 "$f")
      printf 'PATH %s\n' "$rel" >> "$archive"
      printf 'B64 %s\n' "$b64" >> "$archive"
    done
    mv "$newmanifest" "$snar"
    ;;
  extract)
    [ -f "$archive" ] || exit 0
    path=""
    while IFS= read -r line; do
      case "$line" in
        "PATH "*) path="${line#PATH }" ;;
        "B64 "*)
          mkdir -p "$(dirname "$path")"
          printf '%s' "${line#B64 }" | base64 -d > "$path"
          ;;
      esac
    done < "$archive"
    ;;
  list)
    grep '^PATH ' "$archive" 2>/dev/null | sed 's/^PATH //'
    ;;
esac
`
	dir := t.TempDir()
	path := filepath.Join(dir, "tar")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestFreshInitHeadIsAttachedWithNoCommits(t *testing.T) {
	root := t.TempDir()
	s, err := store.Init(root)
	require.NoError(t, err)

	head, err := history.LoadHead(s)
	require.NoError(t, err)
	require.Equal(t, history.Attached, head.Kind)
	require.Equal(t, "main", head.Branch)

	_, err = history.CurrentCommit(s, head)
	require.Error(t, err)
	cat, ok := errs.CategoryOf(err)
	require.True(t, ok)
	require.Equal(t, errs.NoCommitsYet, cat)
}

func TestCreateCommitOnFreshInitCreatesMainBranch(t *testing.T) {
	installFakeTar(t)
	root := t.TempDir()
	s, err := store.Init(root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	engine := snapshot.New()
	id, touched, err := history.CreateCommit(context.Background(), s, engine, "c1")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, []string{"a.txt"}, touched)

	require.True(t, history.BranchExists(s, "main"))
	target, err := history.BranchTarget(s, "main")
	require.NoError(t, err)
	require.Equal(t, id, target)

	commit, err := history.LoadCommit(s, id)
	require.NoError(t, err)
	require.Equal(t, "", commit.Parent)
	require.Equal(t, "c1", commit.Message)
}

func TestAncestorsEndsAtRootWithNoDuplicates(t *testing.T) {
	installFakeTar(t)
	root := t.TempDir()
	s, err := store.Init(root)
	require.NoError(t, err)
	engine := snapshot.New()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("1"), 0o644))
	id1, _, err := history.CreateCommit(ctx, s, engine, "one")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("2"), 0o644))
	id2, _, err := history.CreateCommit(ctx, s, engine, "two")
	require.NoError(t, err)

	chain, err := history.Ancestors(s, id2)
	require.NoError(t, err)
	require.Equal(t, []string{id1, id2}, chain)

	seen := map[string]bool{}
	for _, id := range chain {
		require.False(t, seen[id], "ancestors must not contain duplicates")
		seen[id] = true
	}
}

func TestSetBranchExistsAndForce(t *testing.T) {
	installFakeTar(t)
	root := t.TempDir()
	s, err := store.Init(root)
	require.NoError(t, err)
	engine := snapshot.New()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("1"), 0o644))
	mainID, _, err := history.CreateCommit(context.Background(), s, engine, "one")
	require.NoError(t, err)

	require.NoError(t, history.SetBranch(s, "new", mainID, false))

	err = history.SetBranch(s, "new", mainID, false)
	require.Error(t, err)
	cat, _ := errs.CategoryOf(err)
	require.Equal(t, errs.BranchExists, cat)

	require.NoError(t, history.SetBranch(s, "new", mainID, true))
}

func TestDeleteBranchRefusesHeadBranchAndUnknown(t *testing.T) {
	installFakeTar(t)
	root := t.TempDir()
	s, err := store.Init(root)
	require.NoError(t, err)
	engine := snapshot.New()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("1"), 0o644))
	mainID, _, err := history.CreateCommit(context.Background(), s, engine, "one")
	require.NoError(t, err)
	require.NoError(t, history.SetBranch(s, "first", mainID, false))

	head, err := history.LoadHead(s)
	require.NoError(t, err)

	err = history.DeleteBranch(s, "main", head)
	cat, _ := errs.CategoryOf(err)
	require.Equal(t, errs.BranchInUse, cat)

	require.NoError(t, history.DeleteBranch(s, "first", head))

	err = history.DeleteBranch(s, "first", head)
	cat, _ = errs.CategoryOf(err)
	require.Equal(t, errs.UnknownBranch, cat)
}
