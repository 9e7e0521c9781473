// Package reader implements the annotation cache engine.
//
// A Reader answers annotation queries from a process-local memo, then from a
// persistent item pool, and only falls back to the annotation provider when
// neither holds a usable entry. In development mode every persistent entry is
// re-validated against the modification times of the declaration's
// derivation graph before it is trusted.
package reader

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// SpanResolve is the name of the span covering one resolution.
const SpanResolve = "annocache.resolve"

// Reader is a caching annotation reader. It is safe for concurrent use.
type Reader struct {
	provider  ports.Provider
	pool      ports.ItemPool
	graph     ports.DeclarationGraph
	evaluator *Evaluator
	devMode   bool

	logger   ports.Logger
	tracer   ports.Tracer
	recorder ports.Recorder
	clock    func() time.Time

	memo  *recordMemo
	group singleflight.Group

	// batchMu keeps the deferred queue of the pool to one record and its
	// marker between SaveDeferred and Commit.
	batchMu sync.Mutex
}

type resolution struct {
	records domain.Collection
	outcome domain.Outcome
}

// New creates a Reader in front of provider, persisting into pool.
func New(provider ports.Provider, pool ports.ItemPool, opts ...Option) (*Reader, error) {
	if provider == nil {
		return nil, zerr.With(domain.ErrInvalidProvider, "expected", "ports.Provider")
	}
	if pool == nil {
		return nil, zerr.With(domain.ErrInvalidStore, "expected", "ports.ItemPool")
	}

	r := &Reader{
		provider: provider,
		pool:     pool,
		logger:   nopLogger{},
		tracer:   nopTracer{},
		recorder: nopRecorder{},
		clock:    time.Now,
		memo:     newRecordMemo(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.graph != nil {
		r.evaluator = NewEvaluator(r.graph)
	} else if r.devMode {
		return nil, zerr.With(domain.ErrMissingGraph, "expected", "ports.DeclarationGraph")
	}
	return r, nil
}

// DevMode reports whether cached entries are re-validated.
func (r *Reader) DevMode() bool {
	return r.devMode
}

// ClassAnnotations returns the annotations of a declaration.
func (r *Reader) ClassAnnotations(ctx context.Context, decl domain.Declaration) (domain.Collection, error) {
	return r.Annotations(ctx, domain.ClassTarget(decl))
}

// PropertyAnnotations returns the annotations of a property of decl.
func (r *Reader) PropertyAnnotations(ctx context.Context, decl domain.Declaration, name string) (domain.Collection, error) {
	return r.Annotations(ctx, domain.PropertyTarget(decl, name))
}

// MethodAnnotations returns the annotations of a method of decl.
func (r *Reader) MethodAnnotations(ctx context.Context, decl domain.Declaration, name string) (domain.Collection, error) {
	return r.Annotations(ctx, domain.MethodTarget(decl, name))
}

// ClassAnnotation returns the first annotation of the given kind on decl.
// A missing kind reports false, not an error.
func (r *Reader) ClassAnnotation(ctx context.Context, decl domain.Declaration, kind string) (domain.Annotation, bool, error) {
	return r.Annotation(ctx, domain.ClassTarget(decl), kind)
}

// PropertyAnnotation returns the first annotation of the given kind on a property of decl.
func (r *Reader) PropertyAnnotation(ctx context.Context, decl domain.Declaration, name, kind string) (domain.Annotation, bool, error) {
	return r.Annotation(ctx, domain.PropertyTarget(decl, name), kind)
}

// MethodAnnotation returns the first annotation of the given kind on a method of decl.
func (r *Reader) MethodAnnotation(ctx context.Context, decl domain.Declaration, name, kind string) (domain.Annotation, bool, error) {
	return r.Annotation(ctx, domain.MethodTarget(decl, name), kind)
}

// Annotation returns the first annotation of the given kind on target.
func (r *Reader) Annotation(ctx context.Context, target domain.Target, kind string) (domain.Annotation, bool, error) {
	records, err := r.Annotations(ctx, target)
	if err != nil {
		return domain.Annotation{}, false, err
	}
	a, ok := records.First(kind)
	return a, ok, nil
}

// Annotations returns the annotations of target, from the memo, the item pool
// or the provider, in that order.
func (r *Reader) Annotations(ctx context.Context, target domain.Target) (domain.Collection, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	key := domain.Key(target)
	if err := domain.ValidateKey(key); err != nil {
		return nil, zerr.With(err, "key", key)
	}

	if records, ok := r.memo.get(key); ok {
		r.recorder.Record(domain.OutcomeMemo)
		return records, nil
	}

	var (
		res resolution
		err error
	)
	for range maxJoinAttempts {
		var shared bool
		res, shared, err = r.resolve(ctx, target, key)
		// Retry when only another caller's context ended.
		if err == nil || !shared || ctx.Err() != nil || !isContextError(err) {
			break
		}
		r.group.Forget(key)
	}
	if err != nil {
		return nil, err
	}

	r.recorder.Record(res.outcome)
	return res.records, nil
}

// maxJoinAttempts bounds how often a caller re-runs a shared resolution that
// was cancelled on behalf of another caller.
const maxJoinAttempts = 3

// resolve runs one resolution of key, shared with concurrent callers of the
// same key. It runs under the context of the caller that started it.
func (r *Reader) resolve(ctx context.Context, target domain.Target, key string) (resolution, bool, error) {
	generation := r.memo.current()
	v, err, shared := r.group.Do(key, func() (any, error) {
		if records, ok := r.memo.get(key); ok {
			return resolution{records: records, outcome: domain.OutcomeMemo}, nil
		}

		ctx, span := r.tracer.Start(ctx, SpanResolve, ports.WithAttribute("key", key))
		defer span.End()

		records, outcome, err := r.fetchCached(ctx, target, key)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		span.SetAttribute("outcome", string(outcome))

		r.memo.put(key, records, generation)
		return resolution{records: records, outcome: outcome}, nil
	})
	if err != nil {
		return resolution{}, shared, err
	}
	return v.(resolution), shared, nil //nolint:forcetypeassert // singleflight only returns resolutions
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Clear empties the memo and the timestamp memos. Persistent entries are kept.
func (r *Reader) Clear() {
	r.memo.clear()
	if r.evaluator != nil {
		r.evaluator.Clear()
	}
}

// LatestModification returns the latest modification time over the
// derivation graph of decl. It requires a graph.
func (r *Reader) LatestModification(ctx context.Context, decl domain.Declaration) (int64, error) {
	if r.evaluator == nil {
		return 0, domain.ErrMissingGraph
	}
	return r.evaluator.LatestModification(ctx, decl)
}

// fetchCached resolves key against the item pool, recomputing and persisting
// the annotations when the pool has no usable entry.
func (r *Reader) fetchCached(ctx context.Context, target domain.Target, key string) (domain.Collection, domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	item, err := r.pool.GetItem(ctx, key)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	outcome := domain.OutcomeMiss
	if item.IsHit() {
		cached, err := decodeCollection(item.Get())
		switch {
		case err != nil:
			r.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		case !r.devMode:
			return cached, domain.OutcomeTrusted, nil
		default:
			fresh, err := r.isFresh(ctx, target.Declaration, key)
			if err != nil {
				return nil, "", err
			}
			if fresh {
				return cached, domain.OutcomeFresh, nil
			}
			r.logger.Debug("cache entry is stale", "key", key)
			outcome = domain.OutcomeStale
		}
	}

	records, err := r.provider.Annotations(ctx, target)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, domain.ErrProviderFailed.Error()), "key", key)
	}
	if records == nil {
		records = domain.Collection{}
	}

	payload, err := encodeCollection(records)
	if err != nil {
		return nil, "", zerr.With(err, "key", key)
	}
	item.Set(payload)

	if err := r.persist(ctx, item); err != nil {
		return nil, "", err
	}
	return records, outcome, nil
}

// isFresh reports whether the freshness marker of key is at least as recent
// as the latest modification over the derivation graph of decl.
func (r *Reader) isFresh(ctx context.Context, decl domain.Declaration, key string) (bool, error) {
	markerKey := domain.MarkerKey(key)
	marker, err := r.pool.GetItem(ctx, markerKey)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", markerKey)
	}
	if !marker.IsHit() {
		return false, nil
	}

	stored, err := decodeTimestamp(marker.Get())
	if err != nil {
		r.logger.Warn("discarding undecodable freshness marker", "key", markerKey, "error", err)
		return false, nil
	}

	latest, err := r.evaluator.LatestModification(ctx, decl)
	if err != nil {
		return false, zerr.With(err, "key", key)
	}
	return stored >= latest, nil
}

// persist writes the record item. In development mode the record and a fresh
// marker are written through one batch.
func (r *Reader) persist(ctx context.Context, record *domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !r.devMode {
		if err := r.pool.Save(ctx, record); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", record.Key())
		}
		return nil
	}

	marker := domain.NewItem(domain.MarkerKey(record.Key()), nil, false)
	marker.Set(encodeTimestamp(r.clock().Unix()))

	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	batch := newWriteBatch(r.pool)
	batch.add(record)
	batch.add(marker)
	return batch.flush(ctx)
}
