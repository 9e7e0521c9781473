package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/annocache/internal/adapters/fs"
	"go.trai.ch/annocache/internal/adapters/logger"
	"go.trai.ch/annocache/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates a fresh watcher per watch session.
type Factory func() (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(walker, log)
			}, nil
		},
	})
}
