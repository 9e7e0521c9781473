package domain

import "runtime"

// Backend names a persistent store implementation.
type Backend string

const (
	// BackendMemory keeps items in process memory.
	BackendMemory Backend = "memory"
	// BackendFile keeps one JSON file per item in a directory.
	BackendFile Backend = "file"
	// BackendBadger keeps items in an embedded badger database.
	BackendBadger Backend = "badger"
)

// StoreSettings selects and locates the persistent store.
type StoreSettings struct {
	Backend Backend `yaml:"backend" env:"BACKEND"`
	// Path is the store directory. Empty means the backend default.
	Path string `yaml:"path" env:"PATH"`
}

// ResolvedPath returns Path, or the default directory of the backend.
func (s StoreSettings) ResolvedPath() string {
	if s.Path != "" {
		return s.Path
	}
	switch s.Backend {
	case BackendFile:
		return DefaultFileStorePath()
	case BackendBadger:
		return DefaultBadgerPath()
	default:
		return ""
	}
}

// Settings configures a run of annocache.
type Settings struct {
	// DevMode re-validates cached entries against source modification times.
	DevMode     bool          `yaml:"dev" env:"DEV"`
	Manifest    string        `yaml:"manifest" env:"MANIFEST"`
	Store       StoreSettings `yaml:"store" envPrefix:"STORE_"`
	LogLevel    string        `yaml:"logLevel" env:"LOG_LEVEL"`
	Parallelism int           `yaml:"parallelism" env:"PARALLELISM"`
	Trace       bool          `yaml:"trace" env:"TRACE"`
}

// DefaultSettings returns production-mode settings with a file store.
func DefaultSettings() Settings {
	return Settings{
		Manifest:    ManifestFileName,
		Store:       StoreSettings{Backend: BackendFile},
		LogLevel:    LogLevelInfo.String(),
		Parallelism: runtime.NumCPU(),
	}
}
