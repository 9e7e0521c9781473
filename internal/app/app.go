// Package app implements the application layer for annocache.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.trai.ch/annocache/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/metrics"  //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/telemetry"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/annocache/internal/engine/reader"
	"go.trai.ch/zerr"
)

// WatcherFactory creates a watcher for one watch session.
type WatcherFactory func() (ports.Watcher, error)

// App represents the main application logic.
type App struct {
	settingsLoader ports.SettingsLoader
	manifestLoader ports.ManifestLoader
	storeOpener    ports.StoreOpener
	modTimes       manifest.ModTimer
	logger         ports.Logger
	tracer         ports.Tracer
	recorder       ports.Recorder
	newWatcher     WatcherFactory
	traceOutput    io.Writer
}

// New creates a new App instance.
func New(
	settingsLoader ports.SettingsLoader,
	manifestLoader ports.ManifestLoader,
	storeOpener ports.StoreOpener,
	modTimes manifest.ModTimer,
	log ports.Logger,
	tracer ports.Tracer,
	recorder ports.Recorder,
	newWatcher WatcherFactory,
) *App {
	return &App{
		settingsLoader: settingsLoader,
		manifestLoader: manifestLoader,
		storeOpener:    storeOpener,
		modTimes:       modTimes,
		logger:         log,
		tracer:         tracer,
		recorder:       recorder,
		newWatcher:     newWatcher,
		traceOutput:    os.Stderr,
	}
}

// WithTraceOutput sets where exported spans are written when tracing is enabled.
func (a *App) WithTraceOutput(w io.Writer) *App {
	a.traceOutput = w
	return a
}

// Overrides are per-invocation settings taking precedence over the settings
// file and the environment. Zero values leave the loaded setting untouched.
type Overrides struct {
	DevMode     *bool
	Manifest    string
	Backend     string
	StorePath   string
	LogLevel    string
	Parallelism int
	Trace       bool
}

// LoadSettings loads the settings of cwd and applies overrides.
func (a *App) LoadSettings(cwd string, o Overrides) (domain.Settings, error) {
	s, err := a.settingsLoader.Load(cwd)
	if err != nil {
		return domain.Settings{}, err
	}

	if o.DevMode != nil {
		s.DevMode = *o.DevMode
	}
	if o.Manifest != "" {
		s.Manifest = o.Manifest
	}
	if o.Backend != "" && domain.Backend(o.Backend) != s.Store.Backend {
		s.Store.Backend = domain.Backend(o.Backend)
		// The loaded path belongs to the previous backend.
		s.Store.Path = ""
	}
	if o.StorePath != "" {
		s.Store.Path = o.StorePath
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.Parallelism > 0 {
		s.Parallelism = o.Parallelism
	}
	s.Trace = s.Trace || o.Trace

	if err := config.Validate(&s); err != nil {
		return domain.Settings{}, err
	}
	config.Resolve(&s, cwd)
	return s, nil
}

// Open loads the manifest, opens the store and builds the reader for settings.
// The returned session must be closed.
func (a *App) Open(ctx context.Context, settings domain.Settings) (*Session, error) {
	var shutdown telemetry.ShutdownFunc
	if settings.Trace {
		var err error
		if shutdown, err = telemetry.Setup(a.traceOutput); err != nil {
			return nil, err
		}
	}

	s, err := a.open(ctx, settings)
	if err != nil {
		if shutdown != nil {
			err = errors.Join(err, shutdown(ctx))
		}
		return nil, err
	}
	s.shutdown = shutdown
	return s, nil
}

func (a *App) open(ctx context.Context, settings domain.Settings) (*Session, error) {
	catalog, err := a.manifestLoader.Load(settings.Manifest)
	if err != nil {
		return nil, err
	}
	graph := manifest.NewGraph(catalog, a.modTimes).WithManifest(settings.Manifest)

	store, err := a.storeOpener.Open(ctx, settings.Store)
	if err != nil {
		return nil, err
	}

	counts := newTally(a.recorder)
	r, err := reader.New(
		manifest.NewProvider(settings.Manifest, a.manifestLoader),
		store,
		reader.WithDevMode(settings.DevMode),
		reader.WithGraph(graph),
		reader.WithLogger(a.logger),
		reader.WithTracer(a.tracer),
		reader.WithRecorder(counts),
	)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	a.logger.Debug("session opened",
		"manifest", settings.Manifest,
		"backend", string(settings.Store.Backend),
		"dev", settings.DevMode,
	)
	return &Session{
		settings: settings,
		graph:    graph,
		reader:   r,
		store:    store,
		tally:    counts,
		loader:   a.manifestLoader,
		logger:   a.logger,
		tracer:   a.tracer,
	}, nil
}

// NewWatcher creates a watcher for Session.Watch.
func (a *App) NewWatcher() (ports.Watcher, error) {
	if a.newWatcher == nil {
		return nil, zerr.With(domain.ErrWatchFailed, "reason", "no watcher configured")
	}
	return a.newWatcher()
}

// metricsExporter is implemented by recorders that can expose their counts.
type metricsExporter interface {
	WriteText(w io.Writer) error
	Handler() http.Handler
}

func (a *App) exporter() (metricsExporter, error) {
	exp, ok := a.recorder.(metricsExporter)
	if !ok {
		return nil, zerr.With(domain.ErrMetricsUnavailable, "recorder", fmt.Sprintf("%T", a.recorder))
	}
	return exp, nil
}

// WriteMetrics writes the resolution counters in the Prometheus text format.
func (a *App) WriteMetrics(w io.Writer) error {
	exp, err := a.exporter()
	if err != nil {
		return err
	}
	return exp.WriteText(w)
}

// ServeMetrics serves the resolution counters on addr until the returned
// server is shut down.
func (a *App) ServeMetrics(addr string) (*metrics.Server, error) {
	exp, err := a.exporter()
	if err != nil {
		return nil, err
	}
	return metrics.Listen(addr, exp.Handler(), a.logger)
}

// Keys returns the cache key of target and the key of its freshness marker.
func Keys(target domain.Target) (key, marker string, err error) {
	if err := target.Validate(); err != nil {
		return "", "", err
	}
	key = domain.Key(target)
	if err := domain.ValidateKey(key); err != nil {
		return "", "", zerr.With(err, "key", key)
	}
	return key, domain.MarkerKey(key), nil
}
