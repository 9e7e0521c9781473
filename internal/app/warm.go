package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// SpanWarm is the name of the span covering a warm pass.
	SpanWarm = "annocache.warm"
	// SpanRefresh is the name of the span covering a reload after a change.
	SpanRefresh = "annocache.refresh"
)

// WarmReport summarizes a warm pass.
type WarmReport struct {
	Targets  int
	Failed   int
	Outcomes map[domain.Outcome]int64
}

// Warm resolves every declaration and member of the catalog, at most
// Settings.Parallelism at a time. Failures do not stop the pass; they are
// joined into the returned error.
func (s *Session) Warm(ctx context.Context) (WarmReport, error) {
	ctx, span := s.tracer.Start(ctx, SpanWarm)
	defer span.End()

	before := s.tally.snapshot()

	var (
		g       errgroup.Group
		mu      sync.Mutex
		errs    []error
		targets int
	)
	g.SetLimit(s.settings.Parallelism)

	for target := range s.graph.Catalog().Targets() {
		if ctx.Err() != nil {
			break
		}
		targets++
		g.Go(func() error {
			if _, err := s.reader.Annotations(ctx, target); err != nil {
				mu.Lock()
				errs = append(errs, zerr.With(err, "target", target.String()))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	report := WarmReport{
		Targets:  targets,
		Failed:   len(errs),
		Outcomes: s.tally.since(before),
	}
	span.SetAttribute("targets", targets)
	span.SetAttribute("failed", len(errs))

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
	}
	s.logger.Debug("warm finished", "targets", targets, "failed", len(errs))
	return report, err
}

// tally counts outcomes for reports and forwards them to the next recorder.
type tally struct {
	next   ports.Recorder
	counts map[domain.Outcome]*atomic.Int64
}

func newTally(next ports.Recorder) *tally {
	counts := make(map[domain.Outcome]*atomic.Int64, len(domain.Outcomes()))
	for _, o := range domain.Outcomes() {
		counts[o] = new(atomic.Int64)
	}
	return &tally{next: next, counts: counts}
}

// Record counts one resolution.
func (t *tally) Record(outcome domain.Outcome) {
	if c, ok := t.counts[outcome]; ok {
		c.Add(1)
	}
	if t.next != nil {
		t.next.Record(outcome)
	}
}

func (t *tally) snapshot() map[domain.Outcome]int64 {
	out := make(map[domain.Outcome]int64, len(t.counts))
	for o, c := range t.counts {
		out[o] = c.Load()
	}
	return out
}

func (t *tally) since(before map[domain.Outcome]int64) map[domain.Outcome]int64 {
	out := t.snapshot()
	for o, n := range before {
		out[o] -= n
	}
	return out
}
