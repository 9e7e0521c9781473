package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/annocache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/annocache/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.LoaderNodeID,
			store.NodeID,
			fs.ModTimesNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settingsLoader, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}
	manifestLoader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}
	opener, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}
	modTimes, err := graft.Dep[*fs.ModTimes](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(
		settingsLoader,
		manifestLoader,
		opener,
		modTimes,
		log,
		tracer,
		recorder,
		WatcherFactory(newWatcher),
	), nil
}
