// Package watcher reports changes to the workspace file, the lock file and the
// project manifests.
package watcher

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is how long the watcher waits for more events before
// reporting a batch.
const DefaultDebounceWindow = 100 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify. Only the parent directories of
// the watched files are registered, and events for other files are dropped.
type Watcher struct {
	logger ports.Logger
	window time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow overrides DefaultDebounceWindow.
func WithWindow(d time.Duration) Option {
	return func(w *Watcher) {
		w.window = d
	}
}

// NewWatcher creates a new Watcher.
func NewWatcher(logger ports.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		logger: logger,
		window: DefaultDebounceWindow,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts observing paths until ctx is done.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan []string, error) {
	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve watched path"), "path", p)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	out := make(chan []string)
	go w.run(ctx, fsw, targets, out)
	return out, nil
}

func (w *Watcher) run(
	ctx context.Context,
	fsw *fsnotify.Watcher,
	targets map[string]struct{},
	out chan<- []string,
) {
	defer close(out)
	defer func() { _ = fsw.Close() }()

	d := NewDebouncer(w.window)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, ok := targets[filepath.Clean(event.Name)]; !ok {
				continue
			}
			d.Add(filepath.Clean(event.Name))
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error: " + err.Error())
		case <-d.C():
			batch := d.Drain()
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}
