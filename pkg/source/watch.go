package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/vlist/pkg/log"
)

// Event reports a change to a watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a single file for changes.
//
// The parent directory is watched rather than the file itself, so that the
// file can be replaced by editors that write to a temporary file and rename
// it into place.
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	listeners []chan<- Event
	mu        sync.Mutex
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = fw.Add(filepath.Dir(abs))
	if err != nil {
		_ = fw.Close() //nolint:errcheck // Returning the Add error.

		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{watcher: fw, path: abs}, nil
}

// Subscribe registers ch to receive events. Sends block, so ch must be
// drained while [Watcher.Run] is running.
func (w *Watcher) Subscribe(ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.listeners = append(w.listeners, ch)
}

// Run forwards write and create events for the watched file to subscribers
// until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	logger := log.WithContext(ctx).With(slog.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(evt.Name) != w.path {
				continue
			}

			// Only content changes can add rows.
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}

			logger.DebugContext(ctx, "file changed", slog.String("op", evt.Op.String()))
			w.broadcast(ctx, Event{Path: w.path, Op: evt.Op})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			logger.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) broadcast(ctx context.Context, evt Event) {
	w.mu.Lock()
	listeners := append([]chan<- Event(nil), w.listeners...)
	w.mu.Unlock()

	for _, ch := range listeners {
		select {
		case ch <- evt:
		case <-ctx.Done():
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}
