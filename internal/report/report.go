// Package report defines the reporter interface consumed by the
// command surface: a stream of structured events that an external
// formatter (here, logrus plus fatih/color) renders. Verbosity filters
// the stream; it never changes command semantics.
package report

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Verbosity selects how much of the event stream is rendered.
type Verbosity int

const (
	Normal Verbosity = iota
	Quiet
	Verbose
)

// BranchRow is one row of `branch` output.
type BranchRow struct {
	Name    string
	Commit  string
	Current bool
}

// CommitRow is one row of `log` output.
type CommitRow struct {
	ShortID      string
	RelativeTime string
	Decorations  []string
	Summary      string
}

// Reporter is the abstract event stream the command surface writes to.
type Reporter interface {
	Info(text string)
	Warn(text string)
	Error(text string)
	BranchRow(row BranchRow)
	CommitRow(row CommitRow)
	GroupHeader(text string)
}

// logrusReporter is the concrete Reporter: a logrus logger for
// info/warn/error, with fatih/color used to decorate list rows the way
// a human-facing CLI in this corpus renders emphasis (current-branch
// marker, HEAD tag).
type logrusReporter struct {
	log *logrus.Logger
}

// New builds a Reporter whose level is derived from v.
func New(v Verbosity) Reporter {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch v {
	case Quiet:
		log.SetLevel(logrus.WarnLevel)
	case Verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return &logrusReporter{log: log}
}

func (r *logrusReporter) Info(text string)  { r.log.Info(text) }
func (r *logrusReporter) Warn(text string)  { r.log.Warn(text) }
func (r *logrusReporter) Error(text string) { r.log.Error(text) }

func (r *logrusReporter) GroupHeader(text string) {
	r.log.Info(color.New(color.Bold).Sprint(text))
}

func (r *logrusReporter) BranchRow(row BranchRow) {
	marker := "  "
	name := row.Name
	if row.Current {
		marker = color.GreenString("* ")
		name = color.New(color.Bold).Sprint(row.Name)
	}
	r.log.Infof("%s%s\t%s", marker, name, row.Commit)
}

func (r *logrusReporter) CommitRow(row CommitRow) {
	id := color.YellowString(row.ShortID)
	deco := ""
	if len(row.Decorations) > 0 {
		deco = color.CyanString(" (%s)", joinComma(row.Decorations))
	}
	r.log.Infof("%s %s%s  %s", id, row.RelativeTime, deco, row.Summary)
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}
