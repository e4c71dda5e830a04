package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/fishfix/internal/domain"
)

// RenderLintSummary prints the anomaly counts of a lint run. Non-zero counts are
// printed bold when emphasize is set.
func RenderLintSummary(w io.Writer, stats domain.RunStats, emphasize bool) {
	fmt.Fprintf(w, "%s: %s\n", LabelRecords, humanize.Comma(int64(stats.TotalRecords)))
	counts := []struct {
		label string
		n     int
	}{
		{LabelUnparseable, stats.UnparseableCount},
		{LabelBadPaths, stats.UnparseablePaths},
		{LabelUnsorted, stats.UnsortedCount},
		{LabelInvalidWhen, stats.InvalidWhenCount},
		{LabelMissingWhen, stats.MissingWhenCount},
		{LabelStray, stats.StrayLines},
	}
	for _, c := range counts {
		value := humanize.Comma(int64(c.n))
		if emphasize && c.n > 0 {
			value = "\x1b[1m" + value + "\x1b[0m"
		}
		fmt.Fprintf(w, "%s: %s\n", c.label, value)
	}
	if stats.Clean() {
		fmt.Fprintln(w, MsgNoProblems)
	}
}

// RenderRunSummary prints what a fixing run wrote.
func RenderRunSummary(w io.Writer, result domain.FixResult) {
	dest := result.Output
	if dest == domain.StdioPath {
		dest = "stdout"
	}
	fmt.Fprintf(w, "Wrote %s records (%s) to %s\n",
		humanize.Comma(int64(result.Records)),
		humanize.Bytes(uint64(result.BytesWritten)),
		dest)
	fmt.Fprintf(w, "Repaired %s cmd lines, %s path items, %s out-of-order records\n",
		humanize.Comma(int64(result.Stats.RepairedCount)),
		humanize.Comma(int64(result.Stats.RepairedPaths)),
		humanize.Comma(int64(result.Stats.UnsortedCount)))
	if result.Archived > 0 {
		fmt.Fprintf(w, "Archived %s new entries\n", humanize.Comma(int64(result.Archived)))
	}
}
