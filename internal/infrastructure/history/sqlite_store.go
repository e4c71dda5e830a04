package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/ports"
)

// SQLiteArchive keeps merged history entries in a SQLite database.
type SQLiteArchive struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// OpenSQLiteArchive creates (or opens) the archive database at path.
func OpenSQLiteArchive(path string) (*SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, &domain.IOError{Op: "create", Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	store := &SQLiteArchive{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	return store, nil
}

// OpenArchive adapts OpenSQLiteArchive to ports.ArchiveOpener.
func OpenArchive(path string) (ports.HistoryArchive, error) {
	store, err := OpenSQLiteArchive(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteArchive) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cmd TEXT NOT NULL,
		when_unix INTEGER NOT NULL,
		paths TEXT NOT NULL DEFAULT '[]',
		source TEXT NOT NULL DEFAULT '',
		UNIQUE(cmd, when_unix)
	);`)
	return err
}

// Save inserts entries in one transaction, skipping ones already archived.
// It returns the number of new rows.
func (s *SQLiteArchive) Save(ctx context.Context, source string, entries []domain.HistoryEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &domain.IOError{Op: "archive", Path: s.path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO history (cmd, when_unix, paths, source) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, &domain.IOError{Op: "archive", Path: s.path, Err: err}
	}
	defer stmt.Close()

	inserted := 0
	for _, entry := range entries {
		paths := entry.Paths
		if paths == nil {
			paths = []string{}
		}
		raw, err := json.Marshal(paths)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx, entry.Cmd, entry.When, string(raw), source)
		if err != nil {
			return 0, &domain.IOError{Op: "archive", Path: s.path, Err: err}
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, &domain.IOError{Op: "archive", Path: s.path, Err: err}
	}
	return inserted, nil
}

// Entries returns archived entries ordered by timestamp, oldest first.
func (s *SQLiteArchive) Entries(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT cmd, when_unix, paths FROM history ORDER BY when_unix, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			entry domain.HistoryEntry
			paths string
		)
		if err := rows.Scan(&entry.Cmd, &entry.When, &paths); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(paths), &entry.Paths); err != nil {
			return nil, err
		}
		if len(entry.Paths) == 0 {
			entry.Paths = nil
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteArchive) Close() error {
	return s.db.Close()
}

var _ ports.HistoryArchive = (*SQLiteArchive)(nil)
