package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ModTimesNodeID is the unique identifier for the modification time Graft node.
	ModTimesNodeID graft.ID = "adapter.fs.modtimes"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*ModTimes]{
		ID:        ModTimesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*ModTimes, error) {
			return NewModTimes(), nil
		},
	})
}
