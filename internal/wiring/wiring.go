// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/annocache/internal/adapters/config"
	_ "go.trai.ch/annocache/internal/adapters/fs"
	_ "go.trai.ch/annocache/internal/adapters/logger"
	_ "go.trai.ch/annocache/internal/adapters/manifest"
	_ "go.trai.ch/annocache/internal/adapters/metrics"
	_ "go.trai.ch/annocache/internal/adapters/store"
	_ "go.trai.ch/annocache/internal/adapters/telemetry"
	_ "go.trai.ch/annocache/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/annocache/internal/app"
)
