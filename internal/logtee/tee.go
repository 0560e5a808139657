// Package logtee duplicates run output to the console and to a
// timestamped capture file, so the full agent transcript survives the
// terminal session.
package logtee

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Tee writes everything it receives to both an inner writer (normally
// stdout) and a capture file. Writes are serialized so interleaved
// goroutines cannot shear lines in the file.
type Tee struct {
	mu       sync.Mutex
	terminal io.Writer
	file     *os.File
	path     string
}

// Filename returns the timestamped capture filename used by the run
// command, e.g. basketball_research_FULL_20260823_153000.txt.
func Filename(ts time.Time) string {
	return fmt.Sprintf("basketball_research_FULL_%s.txt", ts.Format("20060102_150405"))
}

// New creates a tee over terminal and a capture file at path.
// Parent directories are created as needed.
func New(terminal io.Writer, path string) (*Tee, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &Tee{terminal: terminal, file: f, path: path}, nil
}

// Write implements io.Writer. The file write happens first; a capture
// failure does not block console output.
func (t *Tee) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		if _, err := t.file.Write(p); err != nil {
			// Keep the console alive; drop the capture from here on.
			t.file.Close()
			t.file = nil
		}
	}
	return t.terminal.Write(p)
}

// Printf formats to the tee.
func (t *Tee) Printf(format string, args ...any) {
	fmt.Fprintf(t, format, args...)
}

// Path returns the capture file path.
func (t *Tee) Path() string {
	return t.path
}

// Sync flushes the capture file to disk.
func (t *Tee) Sync() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file == nil {
		return nil
	}
	return t.file.Sync()
}

// Close flushes and closes the capture file. The terminal writer is
// left untouched. Close is safe to call more than once.
func (t *Tee) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
