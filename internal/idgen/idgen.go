// Package idgen produces commit identifiers and validates branch names
// against the grammar in the data model.
package idgen

import (
	"encoding/hex"
	"regexp"

	"github.com/keshon/vaultkeep/internal/errs"
	"lukechampine.com/blake3"
)

// rootMarker is hashed in place of a parent id for root commits.
const rootMarker = "\x00root\x00"

// idLen is the length, in bytes, of a commit id before hex encoding:
// 20 bytes = 160 bits = 40 hex digits, per the data model.
const idLen = 20

// NewCommitID derives a 40-hex-digit commit id from the parent id (or
// "" for a root commit), the commit message, and a timestamp-derived
// salt. The salt only needs to make re-hashing the same logical commit
// vanishingly unlikely to collide with a prior one; it plays no role in
// verification, since ids are not recomputed from content on read.
func NewCommitID(parentID, message string, saltNanos int64) string {
	h := blake3.New(idLen, nil)
	if parentID == "" {
		h.Write([]byte(rootMarker))
	} else {
		h.Write([]byte(parentID))
	}
	h.Write([]byte{0})
	h.Write([]byte(message))
	h.Write([]byte{0})
	writeInt64(h, saltNanos)
	return hex.EncodeToString(h.Sum(nil))
}

func writeInt64(w interface{ Write([]byte) (int, error) }, v int64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	w.Write(buf[:])
}

// idPattern matches a full 40-hex-digit lowercase commit id.
var idPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// IsFullID reports whether s has the shape of a full commit id.
func IsFullID(s string) bool { return idPattern.MatchString(s) }

// hexPattern matches a lowercase hex string of any length, used to
// recognize candidate id prefixes.
var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

// IsHexPrefix reports whether s could be a prefix of a commit id: a
// hex string of at least 4 and at most 40 characters.
func IsHexPrefix(s string) bool {
	return len(s) >= 4 && len(s) <= 40 && hexPattern.MatchString(s)
}

// branchPattern is the branch-name grammar: [A-Za-z_][A-Za-z0-9_]*
var branchPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateBranchName fails with InvalidBranchName unless name matches
// the branch grammar exactly (no leading/trailing whitespace, no
// punctuation besides underscore) and isn't the literal "HEAD", which
// refs.Resolve always treats as the current-HEAD synonym rather than a
// branch lookup.
func ValidateBranchName(name string) error {
	if name == "HEAD" {
		return errs.Errorf(errs.InvalidBranchName, "invalid branch name %q", name)
	}
	if !branchPattern.MatchString(name) {
		return errs.Errorf(errs.InvalidBranchName, "invalid branch name %q", name)
	}
	return nil
}
