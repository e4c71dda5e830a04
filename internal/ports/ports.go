// Package ports defines the interfaces (ports) between the repair core and its adapters.
//
// The application layer (repair, merge, fix) depends only on these abstractions; the
// infrastructure layer provides the file, SQLite, config and logging implementations.
package ports

import (
	"context"
	"io"

	"github.com/doeshing/fishfix/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/fishfix/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistorySource reads a whole history file as text. The path "-" means standard input.
type HistorySource interface {
	Read(path string) (string, error)
}

// HistorySink opens the destination for merged history, truncating or appending.
type HistorySink interface {
	Create(path string, appendMode bool) (io.WriteCloser, error)
}

// HistoryArchive stores decoded history entries for later querying.
type HistoryArchive interface {
	Save(ctx context.Context, source string, entries []domain.HistoryEntry) (int, error)
	Close() error
}

// ArchiveOpener opens the archive at a path on demand.
type ArchiveOpener func(path string) (HistoryArchive, error)

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
