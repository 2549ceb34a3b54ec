// Package watch notices when the data slot file changes underneath a
// running session (another crms process, a sync tool, a manual edit).
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches the directory holding one file and reports settled
// changes to that file. Atomic saves replace the file by rename, so the
// directory is watched rather than the file itself.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger

	pending  bool
	lastSeen time.Time
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch: empty path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		log:      logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching; onChange runs on the watcher goroutine once per
// burst of events, after the burst has been quiet for the debounce window.
func (w *Watcher) Start(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		w.log.Warn("watch: create data dir", zap.String("dir", dir), zap.Error(err))
	}
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.log.Debug("watching data slot", zap.String("path", w.path))

	go w.run(ctx, onChange)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("watch: close", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context, onChange func()) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-tick.C:
			if w.settled() && onChange != nil {
				w.log.Debug("data slot changed", zap.String("path", w.path))
				onChange()
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return
	}
	w.mu.Lock()
	w.pending = true
	w.lastSeen = time.Now()
	w.mu.Unlock()
}

// settled reports (and clears) a pending change that has been quiet long
// enough.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending || time.Since(w.lastSeen) < w.debounce {
		return false
	}
	w.pending = false
	return true
}
