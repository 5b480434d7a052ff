package merge

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/core/ports"
)

// NodeID is the unique identifier for the merge stage Graft node.
const NodeID graft.ID = "adapter.merge"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Bundler, error) {
			return New(), nil
		},
	})
}
