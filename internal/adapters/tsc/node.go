package tsc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/adapters/logger"
	"go.trai.ch/dts/internal/core/ports"
)

// NodeID is the unique identifier for the compiler launcher Graft node.
const NodeID graft.ID = "adapter.compiler"

func init() {
	graft.Register(graft.Node[ports.CompilerLauncher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CompilerLauncher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLauncher(log), nil
		},
	})
}
