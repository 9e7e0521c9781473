package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/annocache/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// RefreshFunc observes the result of each refresh triggered by Watch.
type RefreshFunc func(report WarmReport, err error)

// Watch watches the manifest and the source tree, refreshing the session
// once per debounced batch of changes. It returns when ctx is done or the
// watcher stops. The caller warms the session beforehand if needed.
func (s *Session) Watch(ctx context.Context, w ports.Watcher, window time.Duration, onRefresh RefreshFunc) error {
	if !s.reader.DevMode() {
		s.logger.Warn("watching without dev mode only resets the memo, cached entries are not revalidated")
	}

	root := watchRoot(filepath.Dir(s.settings.Manifest), s.Catalog().Root())
	if err := w.Start(ctx, root); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	s.logger.Info("watching for changes", "root", root)

	d := watcher.NewDebouncer(window, func(paths []string) {
		s.logger.Info("sources changed, refreshing", "paths", len(paths))
		report, err := s.Refresh(ctx)
		if onRefresh != nil {
			onRefresh(report, err)
		}
	})
	defer d.Stop()

	for ev := range w.Events() {
		if s.ignored(ev.Path) {
			continue
		}
		s.logger.Debug("source event", "path", ev.Path, "op", int(ev.Operation))
		d.Add(ev.Path)
	}
	return nil
}

// ignored reports whether path belongs to annocache's own working files.
func (s *Session) ignored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == domain.CacheDirName {
			return true
		}
	}
	if s.settings.Store.Backend == domain.BackendMemory || s.settings.Store.Path == "" {
		return false
	}
	return within(path, s.settings.Store.Path)
}

// watchRoot returns the closest directory containing both a and b.
func watchRoot(a, b string) string {
	a, b = filepath.Clean(a), filepath.Clean(b)
	for !within(b, a) {
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
	return a
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
