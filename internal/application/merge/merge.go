// Package merge concatenates repaired history records from several files, orders
// them by timestamp and serializes them back to fish_history text.
package merge

import (
	"bufio"
	"cmp"
	"io"
	"slices"

	"github.com/doeshing/fishfix/internal/domain"
)

// MergeAndSort concatenates groups in the order given and, when sortEnabled, stably
// sorts the result by When so equal timestamps keep their file order. The second
// result is the number of adjacent out-of-order pairs in the concatenated input,
// counted before any sorting.
func MergeAndSort(groups [][]domain.HistoryRecord, sortEnabled bool) ([]domain.HistoryRecord, int) {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	merged := make([]domain.HistoryRecord, 0, total)
	for _, group := range groups {
		merged = append(merged, group...)
	}

	unsorted := CountUnsorted(merged)
	if sortEnabled && unsorted > 0 {
		slices.SortStableFunc(merged, func(a, b domain.HistoryRecord) int {
			return cmp.Compare(a.When, b.When)
		})
	}
	return merged, unsorted
}

// CountUnsorted counts adjacent pairs whose timestamps decrease.
func CountUnsorted(records []domain.HistoryRecord) int {
	count := 0
	for i := 1; i < len(records); i++ {
		if records[i-1].When > records[i].When {
			count++
		}
	}
	return count
}

// Write serializes records verbatim, one line per element, each ending in a newline.
func Write(w io.Writer, records []domain.HistoryRecord) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, rec := range records {
		for _, line := range rec.Lines {
			n, err := bw.WriteString(line)
			written += int64(n)
			if err != nil {
				return written, err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, bw.Flush()
}
