package provenanceapi

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// dataWatcher watches the data directory for YAML changes and invokes a
// reload callback per changed file. Events are debounced so editors that
// write in several steps trigger a single reload.
type dataWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	onChange func(path string)

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]struct{}
}

func newDataWatcher(debounce time.Duration, logger *slog.Logger, onChange func(string)) (*dataWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &dataWatcher{
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}, nil
}

// Watch adds a directory to the watch set. Missing directories are skipped
// so a data dir without a teams/ subdirectory still starts cleanly.
func (w *dataWatcher) Watch(dir string) {
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Debug("Not watching directory", "dir", dir, "error", err)
	}
}

// Start begins processing events until ctx is cancelled.
func (w *dataWatcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
}

// Stop closes the underlying watcher, which ends the event goroutine.
func (w *dataWatcher) Stop() error {
	return w.watcher.Close()
}

// processEvents handles fsnotify events with debouncing.
func (w *dataWatcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent accumulates a single fsnotify event.
func (w *dataWatcher) handleFSEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext != ".yaml" && ext != ".yml" {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Data file change detected",
		"path", event.Name,
		"op", event.Op.String())
}

// flushPending invokes the reload callback for each accumulated change.
func (w *dataWatcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	sort.Strings(changed)
	for _, path := range changed {
		w.onChange(path)
	}
}
