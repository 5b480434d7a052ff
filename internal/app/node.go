package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/adapters/config"
	"go.trai.ch/dts/internal/adapters/fs"
	"go.trai.ch/dts/internal/adapters/logger"
	"go.trai.ch/dts/internal/adapters/merge"
	"go.trai.ch/dts/internal/adapters/telemetry"
	"go.trai.ch/dts/internal/adapters/tsc"
	"go.trai.ch/dts/internal/adapters/watcher"
	"go.trai.ch/dts/internal/core/ports"
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
			tsc.NodeID,
			merge.NodeID,
			fs.FileSystemNodeID,
			fs.WriterNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			watcher.WatcherNodeID,
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
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	launcher, err := graft.Dep[ports.CompilerLauncher](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.OutputWriter](ctx)
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

	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, launcher, bundler, fsys, writer, log, tracer, newWatcher), nil
}
