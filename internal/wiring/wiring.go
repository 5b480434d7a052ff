// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dts/internal/adapters/config"
	_ "go.trai.ch/dts/internal/adapters/fs"
	_ "go.trai.ch/dts/internal/adapters/logger"
	_ "go.trai.ch/dts/internal/adapters/merge"
	_ "go.trai.ch/dts/internal/adapters/telemetry"
	_ "go.trai.ch/dts/internal/adapters/tsc"
	_ "go.trai.ch/dts/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/dts/internal/app"
)
