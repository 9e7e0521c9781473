package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidDeclaration is returned when a declaration name is empty or contains reserved characters.
	ErrInvalidDeclaration = zerr.New("invalid declaration name")

	// ErrInvalidMember is returned when a property or method name cannot be keyed.
	ErrInvalidMember = zerr.New("invalid member name")

	// ErrInvalidKey is returned when a cache key is empty or contains line breaks.
	ErrInvalidKey = zerr.New("cache key is invalid")

	// ErrKeyTooLong is returned when a cache key exceeds MaxKeyLength.
	ErrKeyTooLong = zerr.New("cache key exceeds max length")

	// ErrInvalidStore is returned when a reader is constructed without a usable item pool.
	ErrInvalidStore = zerr.New("invalid store, expected an item pool")

	// ErrInvalidProvider is returned when a reader is constructed without an annotation provider.
	ErrInvalidProvider = zerr.New("invalid provider, expected an annotation provider")

	// ErrMissingGraph is returned when modification times are requested without a declaration graph.
	ErrMissingGraph = zerr.New("declaration graph is required in development mode")

	// ErrCycleDetected is returned when the derivation graph of a declaration contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrProviderFailed is returned when the annotation provider fails.
	ErrProviderFailed = zerr.New("failed to read annotations")

	// ErrStoreReadFailed is returned when an item cannot be read from the store.
	ErrStoreReadFailed = zerr.New("failed to read cache item")

	// ErrStoreWriteFailed is returned when an item cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write cache item")

	// ErrStoreCommitFailed is returned when deferred items cannot be committed.
	ErrStoreCommitFailed = zerr.New("failed to commit deferred cache items")

	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreOpenFailed is returned when the store backend cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open store")

	// ErrStoreClosed is returned when an item pool is used after Close.
	ErrStoreClosed = zerr.New("store is closed")

	// ErrEncodeFailed is returned when a collection cannot be serialized.
	ErrEncodeFailed = zerr.New("failed to encode annotations")

	// ErrDecodeFailed is returned when a cached payload cannot be deserialized.
	ErrDecodeFailed = zerr.New("failed to decode annotations")

	// ErrInvalidBackend is returned when the configured store backend is unknown.
	ErrInvalidBackend = zerr.New("invalid store backend, expected 'memory', 'file' or 'badger'")

	// ErrMissingStorePath is returned when a persistent backend has no path configured.
	ErrMissingStorePath = zerr.New("store path is required for persistent backends")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file or environment cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrDuplicateDeclaration is returned when a declaration is defined twice.
	ErrDuplicateDeclaration = zerr.New("declaration already exists")

	// ErrMissingDependency is returned when a declaration references one that is not in the manifest.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrDeclarationNotFound is returned when a declaration is not known to the provider.
	ErrDeclarationNotFound = zerr.New("declaration not found")

	// ErrTracingSetupFailed is returned when the trace exporter cannot be created.
	ErrTracingSetupFailed = zerr.New("failed to set up tracing")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch sources")

	// ErrMetricsUnavailable is returned when the recorder cannot export its counts.
	ErrMetricsUnavailable = zerr.New("metrics are not available")

	// ErrMetricsServeFailed is returned when the metrics listener cannot be bound.
	ErrMetricsServeFailed = zerr.New("failed to serve metrics")
)
