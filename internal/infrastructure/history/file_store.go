package history

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/ports"
)

// FileStore reads history files and writes merged output. The path "-" maps to
// the configured stdin and stdout streams.
type FileStore struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewFileStore creates a FileStore bound to the given standard streams.
func NewFileStore(stdin io.Reader, stdout io.Writer) *FileStore {
	return &FileStore{stdin: stdin, stdout: stdout}
}

// Read implements ports.HistorySource. The whole input is loaded into memory.
func (f *FileStore) Read(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == domain.StdioPath {
		data, err = io.ReadAll(f.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", &domain.IOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &domain.IOError{Op: "decode", Path: path, Err: domain.ErrNotText}
	}
	return string(data), nil
}

// Create implements ports.HistorySink. In append mode the returned writer first
// terminates an unfinished last line so appended records start on a fresh line.
func (f *FileStore) Create(path string, appendMode bool) (io.WriteCloser, error) {
	if path == domain.StdioPath {
		return nopCloser{f.stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, &domain.IOError{Op: "create", Path: path, Err: err}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	needsNewline := false
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		last, err := lastByte(path)
		if err != nil {
			return nil, &domain.IOError{Op: "append", Path: path, Err: err}
		}
		needsNewline = last != 0 && last != '\n'
	}

	file, err := os.OpenFile(path, flags, domain.HistoryFilePermissions)
	if err != nil {
		return nil, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	if needsNewline {
		if _, err := file.Write([]byte{'\n'}); err != nil {
			_ = file.Close()
			return nil, &domain.IOError{Op: "append", Path: path, Err: err}
		}
	}
	return &pathWriter{file: file, path: path}, nil
}

// lastByte returns the final byte of path, or 0 when it is missing or empty.
func lastByte(path string) (byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil || info.Size() == 0 {
		return 0, err
	}
	buf := make([]byte, 1)
	if _, err := file.ReadAt(buf, info.Size()-1); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// pathWriter tags write and close failures with the destination path.
type pathWriter struct {
	file *os.File
	path string
}

func (w *pathWriter) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	if err != nil {
		return n, &domain.IOError{Op: "write", Path: w.path, Err: err}
	}
	return n, nil
}

func (w *pathWriter) Close() error {
	if err := w.file.Close(); err != nil {
		return &domain.IOError{Op: "close", Path: w.path, Err: err}
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

var (
	_ ports.HistorySource = (*FileStore)(nil)
	_ ports.HistorySink   = (*FileStore)(nil)
)
