package app

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/annocache/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/telemetry"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/annocache/internal/engine/reader"
)

// Session holds the manifest, store and reader of one run.
type Session struct {
	settings domain.Settings
	graph    *manifest.Graph
	reader   *reader.Reader
	store    ports.PersistentStore
	tally    *tally
	loader   ports.ManifestLoader
	logger   ports.Logger
	tracer   ports.Tracer
	shutdown telemetry.ShutdownFunc

	// refreshMu serializes manifest reloads.
	refreshMu sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Settings returns the settings the session was opened with.
func (s *Session) Settings() domain.Settings {
	return s.settings
}

// Catalog returns the current catalog.
func (s *Session) Catalog() *domain.Catalog {
	return s.graph.Catalog()
}

// Reader returns the cache reader of the session.
func (s *Session) Reader() *reader.Reader {
	return s.reader
}

// Annotations resolves the annotations of target through the cache.
func (s *Session) Annotations(ctx context.Context, target domain.Target) (domain.Collection, error) {
	return s.reader.Annotations(ctx, target)
}

// Annotation resolves the first annotation of kind attached to target.
func (s *Session) Annotation(ctx context.Context, target domain.Target, kind string) (domain.Annotation, bool, error) {
	return s.reader.Annotation(ctx, target, kind)
}

// LatestModification returns the aggregated modification time of decl.
func (s *Session) LatestModification(ctx context.Context, decl domain.Declaration) (int64, error) {
	return s.reader.LatestModification(ctx, decl)
}

// Outcomes returns how many resolutions of each outcome the session served.
func (s *Session) Outcomes() map[domain.Outcome]int64 {
	return s.tally.snapshot()
}

// Refresh reloads the manifest, clears the reader and warms it again. If the
// manifest no longer loads, the previous catalog is kept and the load error
// is returned along with any warm failures.
func (s *Session) Refresh(ctx context.Context) (WarmReport, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	ctx, span := s.tracer.Start(ctx, SpanRefresh)
	defer span.End()

	catalog, loadErr := s.loader.Load(s.settings.Manifest)
	if loadErr != nil {
		s.logger.Warn("manifest failed to load, keeping previous declarations", "error", loadErr)
		span.RecordError(loadErr)
	} else {
		s.graph.Replace(catalog)
	}
	s.reader.Clear()

	report, err := s.Warm(ctx)
	return report, errors.Join(loadErr, err)
}

// Close releases the store and flushes pending spans. It is safe to call
// more than once.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		errs := []error{s.store.Close()}
		if s.shutdown != nil {
			errs = append(errs, s.shutdown(ctx))
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
