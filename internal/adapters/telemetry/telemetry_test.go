package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/annocache/internal/adapters/telemetry"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

func setupRecorder(t *testing.T) (*tracetest.SpanRecorder, *telemetry.OTelTracer) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, telemetry.NewOTelTracerFrom(tp, "test")
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	t.Parallel()

	sr, tracer := setupRecorder(t)

	_, span := tracer.Start(context.Background(), "annocache.resolve",
		ports.WithAttribute("key", "App.User"),
		ports.WithAttribute("depth", 2),
	)
	span.SetAttribute("outcome", domain.OutcomeMiss)
	span.SetAttribute("computed", true)
	span.SetAttribute("latest", int64(1700000000))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("kinds", []string{"Route", "Column"})
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "annocache.resolve", ended[0].Name())

	got := attrs(ended[0])
	assert.Equal(t, "App.User", got["key"].AsString())
	assert.Equal(t, int64(2), got["depth"].AsInt64())
	assert.Equal(t, "miss", got["outcome"].AsString())
	assert.True(t, got["computed"].AsBool())
	assert.Equal(t, int64(1700000000), got["latest"].AsInt64())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0)
	assert.Equal(t, []string{"Route", "Column"}, got["kinds"].AsStringSlice())
	assert.Equal(t, "{1}", got["other"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	t.Parallel()

	sr, tracer := setupRecorder(t)

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(nil)
	span.RecordError(errors.New("provider exploded"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "provider exploded", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	t.Parallel()

	sr, tracer := setupRecorder(t)

	ctx, parent := tracer.Start(context.Background(), "annocache.warm")
	_, child := tracer.Start(ctx, "annocache.resolve")
	child.End()
	parent.End()

	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)

	assert.NotPanics(t, func() {
		span.SetAttribute("k", "v")
		span.RecordError(errors.New("ignored"))
		span.End()
	})
}

//nolint:paralleltest // installs the global tracer provider
func TestSetup_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := telemetry.Setup(&buf)
	require.NoError(t, err)

	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)
	_, span := tracer.Start(context.Background(), "annocache.resolve", ports.WithAttribute("key", "App.User"))
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "annocache.resolve")
	assert.Contains(t, buf.String(), "App.User")
}
