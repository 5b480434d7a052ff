// Package watcher implements file system watching for rebuilding bundles on change.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify. Directories holding build
// dependencies are watched; events are reported for the dependencies themselves and for
// script files created next to them.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	return &Watcher{
		fsWatcher: watcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
	}, nil
}

// Start begins watching the directories of the given files.
func (w *Watcher) Start(ctx context.Context, files []string) error {
	if err := w.Add(files); err != nil {
		return err
	}

	go w.processEvents(ctx)

	return nil
}

// Add watches the directories of files that are not watched yet.
func (w *Watcher) Add(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		file = filepath.Clean(file)
		w.files[file] = struct{}{}

		dir := filepath.Dir(file)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
		}
		w.dirs[dir] = struct{}{}
	}
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents converts raw fsnotify events into ports.WatchEvent until ctx ends
// or the watcher is stopped.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil || !w.relevant(*watchEvent) {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher: file system error: " + err.Error())
			}
		}
	}
}

// relevant reports whether event concerns a build dependency or a new script file.
func (w *Watcher) relevant(event ports.WatchEvent) bool {
	path := filepath.Clean(event.Path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return true
	}
	return event.Operation == ports.OpCreate && domain.IsScriptFile(path)
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	switch {
	case event.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}
	case event.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}
	case event.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}
	case event.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}
	default:
		return nil
	}
}
