package history

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/keshon/vaultkeep/internal/errs"
	"github.com/keshon/vaultkeep/internal/store"
)

// Commit is an immutable record of a historical tracked-root state.
type Commit struct {
	ID        string
	Parent    string // "" only for root commits
	Message   string
	Timestamp time.Time
}

// ShortID returns the first 7 hex characters of the commit id, the
// form used in log rows.
func (c *Commit) ShortID() string {
	if len(c.ID) < 7 {
		return c.ID
	}
	return c.ID[:7]
}

// FirstLine returns the first line of the commit message.
func (c *Commit) FirstLine() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// escapeMessage encodes a message as a single line for storage,
// escaping backslashes then newlines so the record stays one line.
func escapeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, `\`, `\\`)
	msg = strings.ReplaceAll(msg, "\n", `\n`)
	return msg
}

func unescapeMessage(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) {
			switch line[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(line[i])
	}
	return b.String()
}

// SaveCommit atomically writes id's commit-meta record.
func SaveCommit(s *store.Store, c *Commit) error {
	ts := float64(c.Timestamp.UnixNano()) / 1e9
	var buf strings.Builder
	fmt.Fprintf(&buf, "parent=%s\n", c.Parent)
	fmt.Fprintf(&buf, "msg=%s\n", escapeMessage(c.Message))
	fmt.Fprintf(&buf, "ts=%s\n", strconv.FormatFloat(ts, 'f', -1, 64))
	return store.WriteFileAtomic(commitMetaPath(s, c.ID), []byte(buf.String()))
}

func commitMetaPath(s *store.Store, id string) string {
	return s.CommitMetaDir() + "/" + id
}

// LoadCommit reads the commit-meta record for id.
func LoadCommit(s *store.Store, id string) (*Commit, error) {
	data, err := os.ReadFile(commitMetaPath(s, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Errorf(errs.CorruptHistory, "commit %s referenced but has no metadata", id)
		}
		return nil, err
	}

	c := &Commit{ID: id}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "parent":
			c.Parent = val
		case "msg":
			c.Message = unescapeMessage(val)
		case "ts":
			secs, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, errs.Errorf(errs.CorruptHistory, "commit %s has invalid timestamp %q", id, val)
			}
			c.Timestamp = time.Unix(0, int64(secs*1e9))
		}
	}
	return c, nil
}

// CommitExists reports whether id has a commit-meta record.
func CommitExists(s *store.Store, id string) bool {
	_, err := os.Stat(commitMetaPath(s, id))
	return err == nil
}

// DeleteCommit removes id's commit-meta record. Used only by prune.
func DeleteCommit(s *store.Store, id string) error {
	return os.Remove(commitMetaPath(s, id))
}

// ListCommitIDs returns every commit id known to the store, unordered.
func ListCommitIDs(s *store.Store) ([]string, error) {
	entries, err := os.ReadDir(s.CommitMetaDir())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}
