package repair

import "strings"

type scanState int

const (
	outsideRecord scanState = iota
	insideRecord
)

// block is the raw line group of one record, before inspection.
type block struct {
	lines     []string
	startLine int
}

type scanResult struct {
	blocks []block
	// stray holds the 1-based numbers of non-blank lines seen outside any record.
	stray []int
}

// scan walks text line by line and groups lines into records. A record opens on a
// boundary line and owns every following line up to the next boundary or EOF.
func scan(text string) scanResult {
	var (
		res   scanResult
		cur   block
		state = outsideRecord
	)
	flush := func() {
		cur.lines = trimTrailingBlank(cur.lines)
		res.blocks = append(res.blocks, cur)
	}

	for i, line := range splitLines(text) {
		if isBoundary(line) {
			if state == insideRecord {
				flush()
			}
			cur = block{lines: []string{line}, startLine: i + 1}
			state = insideRecord
			continue
		}
		switch state {
		case outsideRecord:
			if strings.TrimSpace(line) != "" {
				res.stray = append(res.stray, i+1)
			}
		case insideRecord:
			cur.lines = append(cur.lines, line)
		}
	}
	if state == insideRecord {
		flush()
	}
	return res
}

// splitLines splits on "\n" and drops the "\r" of CRLF endings, so records are
// written back with plain "\n" line endings.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// isBoundary matches "-", at least one space, then "cmd:" at column 0.
func isBoundary(line string) bool {
	rest, ok := strings.CutPrefix(line, "-")
	if !ok {
		return false
	}
	trimmed := strings.TrimLeft(rest, " ")
	if len(trimmed) == len(rest) {
		return false
	}
	return strings.HasPrefix(trimmed, cmdKey)
}

// isMetadata matches a record key line such as "  when: 1" or "  paths:".
func isMetadata(line string) bool {
	return len(line) > len(metaIndent) &&
		strings.HasPrefix(line, metaIndent) &&
		line[len(metaIndent)] != ' ' &&
		line[len(metaIndent)] != '\t'
}

// splitBlock separates the lines after the cmd line into continuation lines and metadata.
func splitBlock(lines []string) (cont, meta []string) {
	i := 1
	for ; i < len(lines); i++ {
		if isMetadata(lines[i]) {
			break
		}
	}
	return lines[1:i], lines[i:]
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
