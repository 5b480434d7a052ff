// Package main is the entry point for the dts declaration bundler.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/cmd/dts/commands"
	"go.trai.ch/dts/internal/app"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	_ "go.trai.ch/dts/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	return exitCode(cli.Execute(ctx), components.Logger)
}

const (
	exitFailure     = 1
	exitInterrupted = 130
)

// exitCode maps the outcome of a command to the process exit status. Failures are logged
// unless the compiler diagnostics behind them were reported already.
func exitCode(err error, logger ports.Logger) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, domain.ErrCompileFailed):
		return exitFailure
	default:
		logger.Error(err)
		return exitFailure
	}
}
