package reader

import (
	"context"
	"time"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// Option configures a Reader.
type Option func(*Reader)

// WithDevMode enables re-validation of cached entries against source
// modification times. Development mode requires a graph (see WithGraph).
func WithDevMode(enabled bool) Option {
	return func(r *Reader) {
		r.devMode = enabled
	}
}

// WithGraph sets the declaration graph used to compute modification times.
func WithGraph(graph ports.DeclarationGraph) Option {
	return func(r *Reader) {
		r.graph = graph
	}
}

// WithLogger sets the logger.
func WithLogger(log ports.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithTracer sets the tracer used for resolution spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(r *Reader) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithRecorder sets the recorder counting resolution outcomes.
func WithRecorder(recorder ports.Recorder) Option {
	return func(r *Reader) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// WithClock sets the clock stamping freshness markers.
func WithClock(clock func() time.Time) Option {
	return func(r *Reader) {
		if clock != nil {
			r.clock = clock
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(error)          {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}

type nopRecorder struct{}

func (nopRecorder) Record(domain.Outcome) {}
