package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeTarScript is a stand-in for GNU tar used only in tests: a
// minimal shell implementation of --create/--extract/--list with
// --listed-incremental that speaks a trivial text format instead of
// the real tar wire format. It exists so these tests exercise the
// engine's subprocess orchestration, atomic publish, and touched-path
// filtering without depending on a specific tar version's byte output.
const fakeTarScript = `#!/bin/sh
set -e
mode=""
archive=""
snar=""
exclude=""

for arg in "$@"; do
  case "$arg" in
    --create) mode=create ;;
    --extract) mode=extract ;;
    --list) mode=list ;;
    --file=*) archive="${arg#--file=}" ;;
    --listed-incremental=*) snar="${arg#--listed-incremental=}" ;;
    --exclude=./*) exclude="${arg#--exclude=./}" ;;
  esac
done

case "$mode" in
  create)
    : > "$archive"
    newmanifest=$(mktemp)
    find . -type f | while read -r f; do
      rel=$(printf '%s' "$f" | sed 's|^\./||')
      case "$rel" in
        "$exclude"|"$exclude"/*) continue ;;
      esac
      sig="$rel $(stat -c '%s %Y' "$f")"
      echo "$sig" >> "$newmanifest"
      if [ -f "$snar" ] && grep -qxF "$sig" "$snar"; then
        continue
      fi
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
          data="${line#B64 }"
          mkdir -p "$(dirname "$path")"
          printf '%s' "$data" | base64 -d > "$path"
          ;;
      esac
    done < "$archive"
    ;;
  list)
    grep '^PATH ' "$archive" 2>/dev/null | sed 's/^PATH //'
    ;;
esac
`

// installFakeTar writes the fake tar shim to a temp file and points
// tarPath at it for the duration of the test.
func installFakeTar(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "faketar.sh")
	if err := os.WriteFile(path, []byte(fakeTarScript), 0o755); err != nil {
		t.Fatalf("writing fake tar shim: %v", err)
	}

	prev := tarPath
	tarPath = path
	t.Cleanup(func() { tarPath = prev })
}
