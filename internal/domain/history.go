package domain

import "strings"

// WhenStatus describes how a record's sort key was obtained.
type WhenStatus int

const (
	WhenOK WhenStatus = iota
	WhenMissing
	WhenInvalid
)

// ParseOutcome is the per-record result of the repair pass.
type ParseOutcome struct {
	// Valid reports whether the cmd fragment parsed before any fix was applied.
	Valid    bool
	Repaired bool
	// ErrorDetail is only populated when detailed diagnostics were requested.
	ErrorDetail string
	PathErrors  int
	PathRepairs int
}

// HistoryRecord is one `- cmd:` block of a history file, kept line by line.
type HistoryRecord struct {
	Lines      []string
	When       int64
	WhenStatus WhenStatus
	Source     string
	StartLine  int
	Outcome    ParseOutcome
}

// CmdLine returns the line that opens the record.
func (r HistoryRecord) CmdLine() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[0]
}

// Text joins the record lines, each terminated by a newline.
func (r HistoryRecord) Text() string {
	var b strings.Builder
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// HistoryEntry is the decoded form of a repaired record.
type HistoryEntry struct {
	Cmd   string   `yaml:"cmd"`
	When  int64    `yaml:"when"`
	Paths []string `yaml:"paths,omitempty"`
}
