package repair

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/fishfix/internal/domain"
)

// DecodeEntry decodes a record's lines into a HistoryEntry. It fails for records
// that still carry unrepaired content.
func DecodeEntry(rec domain.HistoryRecord) (domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	if err := yaml.Unmarshal([]byte(rec.Text()), &entries); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("decode record at %s:%d: %w", rec.Source, rec.StartLine, err)
	}
	if len(entries) != 1 {
		return domain.HistoryEntry{}, fmt.Errorf("decode record at %s:%d: got %d entries", rec.Source, rec.StartLine, len(entries))
	}
	return entries[0], nil
}
