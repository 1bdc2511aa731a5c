package settings

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"kma/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when its file is edited outside the application.
// It watches the parent directory so editors that save by rename are seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	store       *Store
	file        string
	dir         string
	pendingAt   time.Time
	debounceDur time.Duration
	onReload    func(Settings)
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	closed      bool

	stats WatcherStats
}

// WatcherStats counts watcher activity.
type WatcherStats struct {
	Events  int
	Reloads int
	Errors  int
}

// NewWatcher creates a watcher for store. onReload runs on the watcher goroutine
// each time the file changes to different, parseable content.
func NewWatcher(store *Store, onReload func(Settings)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	file, err := filepath.Abs(store.Path())
	if err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		store:       store,
		file:        file,
		dir:         filepath.Dir(file),
		debounceDur: 200 * time.Millisecond,
		onReload:    onReload,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running || w.closed {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Settings("watching %s", w.file)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategorySettings).Error("watcher close: %v", err)
	}
	logging.Settings("watcher stopped")
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategorySettings).Error("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.file {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	logging.Get(logging.CategorySettings).Debug("watcher: %s", event)

	w.mu.Lock()
	w.stats.Events++
	w.pendingAt = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processDebounced() {
	w.mu.Lock()
	if w.pendingAt.IsZero() || time.Since(w.pendingAt) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pendingAt = time.Time{}
	w.mu.Unlock()

	next, exists, err := read(w.file)
	if err != nil {
		logging.Get(logging.CategorySettings).Warn("reload skipped: %v", err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}
	if !exists {
		return
	}
	next.Display.FillDefaults()
	if !w.store.replace(next) {
		return
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()
	logging.Settings("reloaded %s", w.file)
	if w.onReload != nil {
		w.onReload(next)
	}
}
