// Package repair splits fish history text into records and rewrites the lines that
// do not parse as YAML into quoted, equivalent forms.
package repair

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/fishfix/internal/domain"
)

const (
	cmdKey     = "cmd:"
	cmdPrefix  = "- cmd: "
	metaIndent = "  "
	pathPrefix = "    -"
	pathIndent = "    - "
	pathsKey   = "paths:"
	whenKey    = "when:"
)

// Options controls a repair pass.
type Options struct {
	// FixEnabled rewrites broken cmd lines; when false they are only counted.
	FixEnabled bool
	// FixPaths extends the rewrite to broken paths list items.
	FixPaths bool
	// Detail keeps the parse error text on each record outcome.
	Detail bool
	// Source is recorded on every record.
	Source string
}

// ParseAndRepair splits raw into records, checks every cmd line and path item, and
// repairs what is broken when opts.FixEnabled is set. Records keep their input order.
// Malformed content is never an error; it is counted in the returned stats.
//
// Records without a when line, or with a non-integer one, get sort key 0.
func ParseAndRepair(raw string, opts Options) ([]domain.HistoryRecord, domain.RunStats) {
	scanned := scan(raw)
	stats := domain.RunStats{StrayLines: len(scanned.stray)}
	records := make([]domain.HistoryRecord, 0, len(scanned.blocks))

	for _, b := range scanned.blocks {
		rec := inspect(b, opts)
		if !rec.Outcome.Valid {
			stats.UnparseableCount++
		}
		if rec.Outcome.Repaired {
			stats.RepairedCount++
		}
		stats.UnparseablePaths += rec.Outcome.PathErrors
		stats.RepairedPaths += rec.Outcome.PathRepairs
		switch rec.WhenStatus {
		case domain.WhenMissing:
			stats.MissingWhenCount++
		case domain.WhenInvalid:
			stats.InvalidWhenCount++
		}
		records = append(records, rec)
	}

	stats.TotalRecords = len(records)
	return records, stats
}

// StrayLines returns the line numbers of non-blank text outside any record.
func StrayLines(raw string) []int {
	return scan(raw).stray
}

func inspect(b block, opts Options) domain.HistoryRecord {
	rec := domain.HistoryRecord{Source: opts.Source, StartLine: b.startLine}
	head := b.lines[0]
	cont, meta := splitBlock(b.lines)

	lines := make([]string, 0, len(b.lines))
	err := checkCmd(head, cont)
	rec.Outcome.Valid = err == nil
	if err != nil && opts.Detail {
		rec.Outcome.ErrorDetail = err.Error()
	}
	if err != nil && opts.FixEnabled {
		lines = append(lines, cmdPrefix+QuoteScalar(commandText(head, cont)))
		rec.Outcome.Repaired = true
	} else {
		lines = append(lines, head)
		lines = append(lines, cont...)
	}

	meta, rec.Outcome.PathErrors, rec.Outcome.PathRepairs = repairPaths(meta, opts.FixEnabled && opts.FixPaths)
	rec.Lines = append(lines, meta...)
	rec.When, rec.WhenStatus = sortKey(meta)
	return rec
}

func checkCmd(head string, cont []string) error {
	fragment := head
	multiline := hasContent(cont)
	if multiline {
		fragment = head + "\n" + strings.Join(cont, "\n")
	}
	node, err := cmdScalar(fragment)
	if err != nil {
		return err
	}
	return checkScalar(node, cmdValue(head), multiline)
}

// cmdValue is the text after "cmd:" without its leading spaces.
func cmdValue(head string) string {
	_, after, _ := strings.Cut(head, cmdKey)
	return strings.TrimLeft(after, " ")
}

// commandText rebuilds the command a broken fragment meant to carry. Continuation
// lines lose their indentation and are joined with newlines.
func commandText(head string, cont []string) string {
	text := cmdValue(head)
	if !hasContent(cont) {
		return text
	}
	parts := []string{text}
	for _, line := range trimTrailingBlank(cont) {
		parts = append(parts, strings.TrimLeft(line, " \t"))
	}
	return strings.Join(parts, "\n")
}

// repairPaths checks the list items under "paths:" and rewrites broken ones when fix is set.
func repairPaths(meta []string, fix bool) (out []string, broken, repaired int) {
	out = make([]string, 0, len(meta))
	inPaths := false
	for _, line := range meta {
		if isMetadata(line) {
			inPaths = strings.TrimSpace(line) == pathsKey
			out = append(out, line)
			continue
		}
		if !inPaths || !strings.HasPrefix(line, pathPrefix) {
			out = append(out, line)
			continue
		}
		value := strings.TrimLeft(strings.TrimPrefix(line, pathPrefix), " ")
		if err := checkPath(line, value); err == nil {
			out = append(out, line)
			continue
		}
		broken++
		if !fix {
			out = append(out, line)
			continue
		}
		out = append(out, pathIndent+QuoteScalar(value))
		repaired++
	}
	return out, broken, repaired
}

func checkPath(line, value string) error {
	node, err := pathScalar(strings.TrimLeft(line, " "))
	if err != nil {
		return err
	}
	return checkScalar(node, value, false)
}

// sortKey reads the first "when:" metadata line as a YAML integer.
func sortKey(meta []string) (int64, domain.WhenStatus) {
	for _, line := range meta {
		if !isMetadata(line) {
			continue
		}
		value, ok := strings.CutPrefix(strings.TrimSpace(line), whenKey)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return 0, domain.WhenInvalid
		}
		var when int64
		if err := yaml.Unmarshal([]byte(value), &when); err != nil {
			return 0, domain.WhenInvalid
		}
		return when, domain.WhenOK
	}
	return 0, domain.WhenMissing
}
