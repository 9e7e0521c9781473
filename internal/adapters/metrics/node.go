package metrics

import (
	"context"
	"sync"

	"github.com/grindlemire/graft"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/annocache/internal/core/ports"
)

// NodeID is the unique identifier for the recorder Graft node.
const NodeID graft.ID = "adapter.metrics"

// Registry is the registry the node registers its collectors on.
var Registry = prometheus.NewRegistry()

// defaultRecorder is shared by every graph execution; collectors register once per registry.
var defaultRecorder = sync.OnceValue(func() *PrometheusRecorder {
	return NewPrometheusRecorder(Registry)
})

func init() {
	graft.Register(graft.Node[ports.Recorder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Recorder, error) {
			return defaultRecorder(), nil
		},
	})
}
