package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/garrettladley/lumen/internal/xslog"
)

const reloadDebounce = 200 * time.Millisecond

// Watcher serves a message file and reloads it whenever it changes on disk.
// A reload that fails keeps the last good list.
type Watcher struct {
	path    string
	src     *FileSource
	logger  *slog.Logger
	current atomic.Pointer[[]string]

	// reloaded is signalled after every reload attempt; tests wait on it.
	reloaded chan struct{}
}

// NewWatcher loads path once. An empty path serves Fallback.
func NewWatcher(ctx context.Context, path string, logger *slog.Logger) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		reloaded: make(chan struct{}, 1),
	}

	list := slices.Clone(Fallback)
	if path != "" {
		w.src = NewFileSource(w.path)
		list = Load(ctx, w.src, logger)
	}
	w.current.Store(&list)
	return w
}

// Current returns the live list. Callers must not modify it.
func (w *Watcher) Current() []string {
	return *w.current.Load()
}

// Run watches the file until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if w.src == nil {
		<-ctx.Done()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	// editors replace files on save, so watch the directory
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.logger.InfoContext(ctx, "watching message file", xslog.File(w.path))

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(reloadDebounce)

		case <-debounce:
			debounce = nil
			w.reload(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.reload(ctx)
				continue
			}
			w.logger.ErrorContext(ctx, "message file watcher error", xslog.Error(err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	defer func() {
		select {
		case w.reloaded <- struct{}{}:
		default:
		}
	}()

	list, err := w.src.Fetch(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to reload messages, keeping previous list",
			xslog.File(w.path),
			xslog.Error(err),
		)
		return
	}

	w.current.Store(&list)
	w.logger.InfoContext(ctx, "messages reloaded",
		xslog.File(w.path),
		xslog.Count(len(list)),
	)
}
