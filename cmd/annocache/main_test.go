package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/adapters/config"
	"go.trai.ch/annocache/internal/adapters/fs"
	"go.trai.ch/annocache/internal/adapters/logger"
	"go.trai.ch/annocache/internal/adapters/manifest"
	"go.trai.ch/annocache/internal/adapters/metrics"
	"go.trai.ch/annocache/internal/adapters/store"
	"go.trai.ch/annocache/internal/adapters/telemetry"
	"go.trai.ch/annocache/internal/app"
	"go.trai.ch/annocache/internal/core/domain"
)

func provider(context.Context) (*app.Components, error) {
	log := logger.New()
	a := app.New(
		config.NewLoader(log).WithEnvironment(map[string]string{}),
		manifest.NewLoader(),
		store.NewOpener(log),
		fs.NewModTimes(),
		log,
		telemetry.NewNoOpTracer(),
		metrics.NopRecorder{},
		nil,
	)
	return app.NewComponents(a, log), nil
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	//nolint:gosec // test fixture
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName),
		[]byte("declarations:\n  App.A:\n    annotations: [{kind: Entity}]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", dir, "--store", "memory", "resolve", "App.A"}, &stdout, &stderr, provider)

	assert.Equal(t, 0, code)
	assert.JSONEq(t, `[{"kind":"Entity"}]`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_CommandError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", t.TempDir(), "warm"}, &stdout, &stderr, provider)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrManifestReadFailed.Error())
}

func TestRun_ProviderError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"version"}, &stdout, &stderr,
		func(context.Context) (*app.Components, error) {
			return nil, errors.New("graph failed")
		})

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: graph failed\n", stderr.String())
}

func TestRun_TraceExportsSpans(t *testing.T) {
	dir := t.TempDir()
	//nolint:gosec // test fixture
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName),
		[]byte("declarations:\n  App.A: {}\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", dir, "--store", "memory", "--trace", "resolve", "App.A"},
		&stdout, &stderr, func(ctx context.Context) (*app.Components, error) {
			c, err := provider(ctx)
			if err != nil {
				return nil, err
			}
			c.App = app.New(
				config.NewLoader(c.Logger).WithEnvironment(map[string]string{}),
				manifest.NewLoader(),
				store.NewOpener(c.Logger),
				fs.NewModTimes(),
				c.Logger,
				telemetry.NewOTelTracer(telemetry.InstrumentationName),
				metrics.NopRecorder{},
				nil,
			)
			return c, nil
		})

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "annocache.resolve")
}
