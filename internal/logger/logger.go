package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the path to the tutorial log file, relative to the working directory (project root when run via go run ./cmd/tutorial).
const LogFilePath = "logs/tutorial.txt"

// Logger stores event lines in memory for the on-screen overlays, appends them to a file on disk
// and echoes them to a console writer.
type Logger struct {
	mu    sync.Mutex
	lines []string
	path  string
	echo  io.Writer
}

// New returns a Logger writing to LogFilePath and echoing to stderr.
func New() *Logger {
	return NewAt(LogFilePath, os.Stderr)
}

// NewAt returns a Logger appending to path (empty = memory only) and echoing unstamped lines to echo (nil = no echo).
// The directory of path is created if needed.
func NewAt(path string, echo io.Writer) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{lines: make([]string, 0), path: path, echo: echo}
}

// Log appends a line to the logger and appends it to the log file on disk. Each stored entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	echo := l.echo
	l.mu.Unlock()

	if echo != nil {
		_, _ = fmt.Fprintln(echo, line)
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(len(l.lines)-n, 0)
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}
