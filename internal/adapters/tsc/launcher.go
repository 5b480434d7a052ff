package tsc

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeEnv overrides the node executable the compiler runs on.
const NodeEnv = "DTS_NODE"

// Launcher starts compiler services. It implements ports.CompilerLauncher.
type Launcher struct {
	logger ports.Logger
	node   string
}

var _ ports.CompilerLauncher = (*Launcher)(nil)

// NewLauncher creates a Launcher running node, or the executable named by DTS_NODE when set.
func NewLauncher(logger ports.Logger) *Launcher {
	node := os.Getenv(NodeEnv)
	if node == "" {
		node = "node"
	}
	return &Launcher{logger: logger, node: node}
}

// Launch implements ports.CompilerLauncher. The compiler is loaded from cwd's dependencies.
func (l *Launcher) Launch(ctx context.Context, cwd string) (ports.Compiler, error) {
	node, err := exec.LookPath(l.node)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerStartFailed.Error()), "node", l.node)
	}

	c, err := start(ctx, node, cwd, l.logger)
	if err != nil {
		return nil, err
	}

	svc := &Service{client: c}
	version, err := svc.Version()
	if err != nil {
		_ = svc.Close()
		return nil, zerr.Wrap(err, domain.ErrCompilerStartFailed.Error())
	}
	l.logger.Debug(fmt.Sprintf("typescript %s loaded from %s", version, cwd))
	return svc, nil
}
