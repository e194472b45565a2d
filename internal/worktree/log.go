package worktree

import (
	"context"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/keshon/vaultkeep/internal/history"
	"github.com/keshon/vaultkeep/internal/refs"
	"github.com/keshon/vaultkeep/internal/report"
)

// LogRow is one rendered commit line within a LogGroup.
type LogRow struct {
	Commit      *history.Commit
	Decorations []string
}

// LogGroup is the ancestor chain reachable from a single starting ref,
// newest first, headed by which ref it started from.
type LogGroup struct {
	Header string
	Rows     []LogRow
}

// Log resolves each of startRefs and returns one LogGroup per starting
// point, in the order given. When startRefs is empty it defaults to
// HEAD alone; with all set, every branch target is appended to that
// list so HEAD and every branch each get their own group. Each
// group's ancestor chain is walked independently, so two groups
// sharing history each show their own full chain rather than one
// stealing the other's common ancestors.
func (c *Controller) Log(ctx context.Context, startRefs []string, all bool) ([]LogGroup, error) {
	if len(startRefs) == 0 {
		startRefs = []string{"HEAD"}
	}
	if all {
		branches, err := history.ListBranches(c.Store)
		if err != nil {
			return nil, err
		}
		startRefs = append(startRefs, branches...)
	}

	decorations, err := c.decorations()
	if err != nil {
		return nil, err
	}

	var groups []LogGroup
	for _, ref := range startRefs {
		target, err := refs.Resolve(c.Store, ref)
		if err != nil {
			return nil, err
		}
		chain, err := history.Ancestors(c.Store, target)
		if err != nil {
			return nil, err
		}

		seen := map[string]bool{}
		var rows []LogRow
		for i := len(chain) - 1; i >= 0; i-- {
			id := chain[i]
			if seen[id] {
				continue
			}
			seen[id] = true
			commit, err := history.LoadCommit(c.Store, id)
			if err != nil {
				return nil, err
			}
			rows = append(rows, LogRow{Commit: commit, Decorations: decorations[id]})
		}
		if len(rows) == 0 {
			continue
		}
		groups = append(groups, LogGroup{Header: "Log branch from " + rows[0].Commit.ShortID(), Rows: rows})
	}
	return groups, nil
}

// decorations maps commit id to the sorted list of branch names (plus
// the literal "HEAD" where applicable) pointing at it.
func (c *Controller) decorations() (map[string][]string, error) {
	deco := map[string][]string{}

	branches, err := history.ListBranches(c.Store)
	if err != nil {
		return nil, err
	}
	for _, name := range branches {
		target, err := history.BranchTarget(c.Store, name)
		if err != nil {
			return nil, err
		}
		deco[target] = append(deco[target], name)
	}

	head, err := history.LoadHead(c.Store)
	if err == nil {
		if commit, err := history.CurrentCommit(c.Store, head); err == nil {
			deco[commit] = append(deco[commit], "HEAD")
		}
	}

	for id := range deco {
		sort.Strings(deco[id])
	}
	return deco, nil
}

// Emit writes groups to r, newest-first within each group, with a
// humanized relative timestamp per row.
func Emit(r report.Reporter, groups []LogGroup, full bool) {
	for _, g := range groups {
		r.GroupHeader(g.Header)
		for _, row := range g.Rows {
			summary := row.Commit.FirstLine()
			if full {
				summary = row.Commit.Message
			}
			r.CommitRow(report.CommitRow{
				ShortID:      row.Commit.ShortID(),
				RelativeTime: humanize.Time(row.Commit.Timestamp),
				Decorations:  row.Decorations,
				Summary:      summary,
			})
		}
	}
}
