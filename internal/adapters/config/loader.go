// Package config loads annocache settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "ANNOCACHE_"

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader layers defaults, the settings file and the environment.
type Loader struct {
	logger ports.Logger
	// environment replaces the process environment when set.
	environment map[string]string
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{logger: log}
}

// WithEnvironment returns a copy of the loader reading environ instead of the
// process environment.
func (l *Loader) WithEnvironment(environ map[string]string) *Loader {
	return &Loader{logger: l.logger, environment: environ}
}

// Load reads annocache.yaml from cwd if it exists, applies ANNOCACHE_*
// variables on top, then validates and resolves relative paths against cwd.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	path := filepath.Join(cwd, domain.ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the working directory
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("no settings file, using defaults", "path", path)
	case err != nil:
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	default:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if l.environment != nil {
		opts.Environment = l.environment
	}
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "source", "environment")
	}

	if err := Validate(&settings); err != nil {
		return domain.Settings{}, err
	}
	Resolve(&settings, cwd)
	return settings, nil
}

// Validate checks the settings and fills in derived defaults.
func Validate(s *domain.Settings) error {
	switch s.Store.Backend {
	case domain.BackendMemory, domain.BackendFile, domain.BackendBadger:
	default:
		return zerr.With(domain.ErrInvalidBackend, "backend", string(s.Store.Backend))
	}
	if s.Parallelism <= 0 {
		s.Parallelism = runtime.NumCPU()
	}
	if s.Manifest == "" {
		s.Manifest = domain.ManifestFileName
	}
	return nil
}

// Resolve makes the manifest and store paths absolute relative to cwd.
func Resolve(s *domain.Settings, cwd string) {
	if !filepath.IsAbs(s.Manifest) {
		s.Manifest = filepath.Join(cwd, s.Manifest)
	}
	if s.Store.Backend == domain.BackendMemory {
		return
	}
	if p := s.Store.ResolvedPath(); !filepath.IsAbs(p) {
		s.Store.Path = filepath.Join(cwd, p)
	}
}
