package watcher

import (
	"context"
	"iter"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// DirWalker yields the directories to watch below a root.
type DirWalker interface {
	Dirs(root string, ignores []string) iter.Seq[string]
}

// Watcher implements recursive file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	walker    DirWalker
	logger    ports.Logger
	events    chan ports.WatchEvent
	stopOnce  sync.Once
}

// NewWatcher creates a new file system watcher.
func NewWatcher(walker DirWalker, log ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		walker:    walker,
		logger:    log,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start watches root and every directory below it. Directories created
// later are added as their create events arrive. Events stop when ctx is
// done or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range w.walker.Dirs(root, nil) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of file system events. It ends when the
// watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

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

			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

			if watchEvent.Operation == ports.OpCreate {
				w.addIfDir(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file system watch error", "error", err)
		}
	}
}

func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for dir := range w.walker.Dirs(path, nil) {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Debug("could not watch new directory", "path", dir, "error", err)
		}
	}
}

// convertEvent maps an fsnotify event to a ports.WatchEvent. Chmod-only
// events are dropped.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
