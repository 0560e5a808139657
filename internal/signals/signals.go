// Package signals lets a user stop or pause a running research crew
// from outside the process by dropping files into the run's signals
// directory (`stop`, `pause`, removing `pause` resumes).
package signals

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is how often gates re-check signal files. It also
// serves as the fallback when the fsnotify watcher is unavailable.
const pollInterval = 500 * time.Millisecond

// Watcher observes a signals directory for stop and pause files.
type Watcher struct {
	dir string

	mu         sync.RWMutex
	stopSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a watcher over <runDir>/signals, creating the directory
// if needed. If the fsnotify watcher cannot be set up, the Watcher
// still works via stat polling.
func New(runDir string) (*Watcher, error) {
	dir := filepath.Join(runDir, "signals")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create signals directory: %w", err)
	}

	w := &Watcher{
		dir:  dir,
		done: make(chan struct{}),
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, nil
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return w, nil
	}
	w.watcher = fw
	go w.watch()

	return w, nil
}

// watch marks the stop flag as soon as a stop file appears.
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == "stop" && event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.mu.Lock()
				w.stopSignal = true
				w.mu.Unlock()
			}
		case <-w.watcher.Errors:
			// Keep watching; polling still covers missed events.
		}
	}
}

// ShouldStop returns true once a stop file has been seen.
func (w *Watcher) ShouldStop() bool {
	// Stat directly in case the watcher missed the event.
	if _, err := os.Stat(filepath.Join(w.dir, "stop")); err == nil {
		w.mu.Lock()
		w.stopSignal = true
		w.mu.Unlock()
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stopSignal
}

// Paused returns true while a pause file exists.
func (w *Watcher) Paused() bool {
	_, err := os.Stat(filepath.Join(w.dir, "pause"))
	return err == nil
}

// Gate blocks while the run is paused and returns an error when the
// run should stop. It is called by the crew at each task boundary.
func (w *Watcher) Gate(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.ShouldStop() {
			return fmt.Errorf("stop signal received")
		}
		if !w.Paused() {
			return nil
		}
		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Dir returns the signals directory path.
func (w *Watcher) Dir() string {
	return w.dir
}

// Clear removes any signal files and resets state. Called at run start
// so a stale stop file from a previous run cannot kill a new one.
func (w *Watcher) Clear() {
	w.mu.Lock()
	w.stopSignal = false
	w.mu.Unlock()

	os.Remove(filepath.Join(w.dir, "stop"))
	os.Remove(filepath.Join(w.dir, "pause"))
}

// Close shuts down the watcher.
func (w *Watcher) Close() {
	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
