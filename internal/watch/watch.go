// Package watch re-runs an export whenever the session file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period between a file event and the re-run.
// Editors often emit several events per save, so rapid bursts collapse
// into a single export.
const DefaultDebounce = 250 * time.Millisecond

// SessionWatcher watches a single session file and invokes a callback
// after changes settle.
type SessionWatcher struct {
	path     string
	debounce *debouncer
	logger   *log.Logger
}

// NewSessionWatcher creates a watcher for the session file at path.
func NewSessionWatcher(path string, interval time.Duration, logger *log.Logger) *SessionWatcher {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &SessionWatcher{
		path:     path,
		debounce: newDebouncer(interval),
		logger:   logger,
	}
}

// Watch blocks until ctx is cancelled, calling rerun after each settled
// change to the session file. Callback errors are logged, not fatal, so
// a malformed intermediate save does not stop the watch loop.
//
// The parent directory is watched rather than the file itself: editors
// that save via rename-and-replace would otherwise detach the watch on
// the first write.
func (w *SessionWatcher) Watch(ctx context.Context, rerun func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	defer w.debounce.stop()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	base := filepath.Base(w.path)
	w.logger.Info("watching session file", "path", w.path, "debounce", w.debounce.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if !w.shouldProcess(event, base) {
				continue
			}
			w.logger.Debug("session file event", "op", event.Op.String(), "path", event.Name)
			w.debounce.trigger(func() {
				w.logger.Info("session file changed, re-running export", "path", w.path)
				if err := rerun(ctx); err != nil {
					w.logger.Error("export failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *SessionWatcher) shouldProcess(event fsnotify.Event, base string) bool {
	if filepath.Base(event.Name) != base {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// debouncer collapses bursts of events into a single callback after a
// quiet period.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
