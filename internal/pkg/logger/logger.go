package logger

import (
	"io"
	"log"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Debug and Info only print in verbose mode; Warn and Error always print.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// New creates a StdLogger writing to w.
func New(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(w, "", 0)}
}

// Verbose reports whether debug output is enabled.
func (l *StdLogger) Verbose() bool {
	return l.verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.print("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.print("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.print("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if err != nil {
		merged := make(map[string]interface{}, len(fields)+1)
		for k, v := range fields {
			merged[k] = v
		}
		merged["error"] = err.Error()
		fields = merged
	}
	l.print("[ERROR]", msg, fields)
}

func (l *StdLogger) print(level, msg string, fields map[string]interface{}) {
	if len(fields) == 0 {
		l.out.Println(level, msg)
		return
	}
	l.out.Println(level, msg, fields)
}
