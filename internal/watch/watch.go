// Package watch re-runs a callback whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vinayprograms/edinburgh/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor emits on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *logging.Logger
}

// New creates a watcher for path with the default debounce.
func New(path string) *Watcher {
	return &Watcher{
		Path:     path,
		Debounce: DefaultDebounce,
		Logger:   logging.New().WithComponent("watch"),
	}
}

// Run calls fn with the file's content once, then again after every change,
// until ctx is cancelled or fn returns an error. The parent directory is
// watched so files replaced by rename (as most editors save) are still seen.
func (w *Watcher) Run(ctx context.Context, fn func(content []byte) error) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	if err := fn(content); err != nil {
		return err
	}

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(w.Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", map[string]interface{}{"error": err.Error()})

		case <-timer.C:
			content, err := os.ReadFile(abs)
			if err != nil {
				// mid-save; the next event will retry
				w.Logger.Debug("file not readable", map[string]interface{}{"path": abs, "error": err.Error()})
				continue
			}
			if err := fn(content); err != nil {
				return err
			}
		}
	}
}
