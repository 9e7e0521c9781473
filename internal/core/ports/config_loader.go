package ports

import "go.trai.ch/annocache/internal/core/domain"

// ManifestLoader loads a declaration catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path and returns the validated catalog.
	Load(path string) (*domain.Catalog, error)
}

// SettingsLoader loads the run settings.
type SettingsLoader interface {
	// Load reads the settings file (if present) in cwd and applies the environment.
	Load(cwd string) (domain.Settings, error)
}
