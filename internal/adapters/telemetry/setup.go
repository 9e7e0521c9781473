package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/zerr"
)

// ShutdownFunc flushes and stops an installed tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global SDK tracer provider exporting finished spans to w.
// The returned function must be called to flush pending spans.
func Setup(w io.Writer) (ShutdownFunc, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTracingSetupFailed.Error())
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
