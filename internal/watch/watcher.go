// Package watch reruns a localization when its configuration or page
// manifest changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pagelocale/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc is invoked after watched files settle.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a fixed set of files and triggers debounced rebuilds.
type Watcher struct {
	files        map[string]struct{}
	dirs         []string
	rebuild      RebuildFunc
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	stopped      bool
	triggerChan  chan struct{}
	debounceTime time.Duration
	logger       *slog.Logger
	wg           sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceTime = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for paths. Empty paths are ignored.
func New(paths []string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:        make(map[string]struct{}, len(paths)),
		rebuild:      rebuild,
		stopChan:     make(chan struct{}),
		triggerChan:  make(chan struct{}, 1),
		debounceTime: DefaultDebounce,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	seenDirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		// Resolve absolute path for consistent watching
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.watcher = fw
	return w, nil
}

// Start begins monitoring. Directories are watched rather than the files
// themselves so that editors replacing files atomically are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.logger.Info("Watching for changes", slog.Int("files", len(w.files)), slog.Duration("debounce", w.debounceTime))

	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop ends monitoring and waits for the watch goroutines to exit. A rebuild
// already running is not interrupted; Stop returns after it finishes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	err := w.watcher.Close()
	w.mu.Unlock()

	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Rename):
				w.logger.Debug("Watched file changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Op.Has(fsnotify.Remove):
				w.logger.Warn("Watched file removed", logfields.File(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop owns the debounce timer and runs rebuilds one at a time.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	defer w.wg.Done()
	timer := time.NewTimer(w.debounceTime)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.triggerChan:
			timer.Reset(w.debounceTime)
		case <-timer.C:
			if w.isStopped() {
				return
			}
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) isStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// trigger requests a debounced rebuild.
func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
	default:
		// rebuild already pending
	}
}
