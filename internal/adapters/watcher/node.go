package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/adapters/logger"
	"go.trai.ch/dts/internal/core/ports"
)

// WatcherNodeID is the unique identifier for the file watcher factory Graft node.
const WatcherNodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log)
			}, nil
		},
	})
}
