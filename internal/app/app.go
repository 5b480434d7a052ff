// Package app implements the application layer for dts.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.trai.ch/dts/internal/adapters/detector"
	"go.trai.ch/dts/internal/adapters/telemetry"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/dts/internal/engine/driver"
	"go.trai.ch/dts/internal/engine/plugin"
	"go.trai.ch/dts/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	launcher     ports.CompilerLauncher
	bundler      ports.Bundler
	fs           ports.FileSystem
	writer       ports.OutputWriter
	logger       ports.Logger
	tracer       ports.Tracer
	newWatcher   ports.WatcherFactory

	workDir string
	stdout  io.Writer
	now     func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	launcher ports.CompilerLauncher,
	bundler ports.Bundler,
	fsys ports.FileSystem,
	writer ports.OutputWriter,
	log ports.Logger,
	tracer ports.Tracer,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		launcher:     launcher,
		bundler:      bundler,
		fs:           fsys,
		writer:       writer,
		logger:       log,
		tracer:       tracer,
		newWatcher:   newWatcher,
		stdout:       os.Stdout,
		now:          time.Now,
	}
}

// WithWorkDir sets the directory builds start from instead of the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithStdout sets the writer check mode prints diffs to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// logConfigurer is implemented by loggers whose format and verbosity can change at runtime.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Build loads the configuration, merges opts into it and bundles the declarations of every
// entry point. In watch mode it keeps rebuilding until ctx is cancelled.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	a.configureLogging(opts)

	cwd, err := a.cwd()
	if err != nil {
		return err
	}

	loaded, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	cfg := mergeConfig(loaded, opts, cwd)
	if cfg.Input.IsEmpty() {
		return domain.ErrNoEntryPoints
	}

	compiler, err := a.launcher.Launch(ctx, cfg.Root)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := compiler.Close(); closeErr != nil {
			a.logger.Warn("failed to stop compiler: " + closeErr.Error())
		}
	}()

	if opts.Watch {
		return a.watch(ctx, compiler, cfg)
	}

	_, err = a.buildOnce(ctx, compiler, cfg, opts.Check)
	return err
}

func (a *App) configureLogging(opts BuildOptions) {
	configurer, ok := a.logger.(logConfigurer)
	if !ok {
		return
	}
	format := detector.ResolveFormat(detector.DetectEnvironment(), opts.LogFormat)
	configurer.SetJSON(format == detector.FormatJSON)
	configurer.SetVerbose(opts.Verbose)

	if opts.Verbose {
		// Report span durations through the logger.
		otel.SetTracerProvider(telemetry.NewProvider(a.logger))
	}
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return filepath.Abs(a.workDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}

// buildOnce runs one build with a fresh plugin and writes or checks its outputs.
// The compiler's programs are discarded when the build ends.
func (a *App) buildOnce(
	ctx context.Context,
	compiler ports.Compiler,
	cfg *domain.Config,
	check bool,
) (*driver.Result, error) {
	defer func() {
		if err := compiler.Reset(); err != nil {
			a.logger.Warn("failed to reset compiler: " + err.Error())
		}
	}()

	start := a.now()
	hooks := plugin.New(compiler, a.bundler, a.logger, cfg.ResolvedOptions(), cfg.Root)
	result, err := driver.New(a.fs, compiler, a.logger, a.tracer).Build(
		ctx,
		hooks,
		domain.BuildOptions{Input: cfg.Input, Root: cfg.Root},
		domain.OutputOptions{Dir: cfg.Output},
	)
	if err != nil {
		return nil, errors.Join(domain.ErrBuildFailed, err)
	}

	if check {
		return result, a.check(cfg.Root, result.Outputs)
	}

	written := 0
	for _, out := range result.Outputs {
		changed, err := a.writer.Write(out.Name, out.Text)
		if err != nil {
			return result, err
		}
		if changed {
			written++
			a.logger.Debug("wrote " + relativeTo(cfg.Root, out.Name))
		}
	}

	a.logger.Info(fmt.Sprintf(
		"bundled %d entry point(s) in %s, %d file(s) updated",
		len(result.Outputs),
		a.now().Sub(start).Round(time.Millisecond),
		written,
	))
	return result, nil
}

// check compares every output with the file on disk and prints a diff for each stale one.
func (a *App) check(root string, outputs []domain.OutputFile) error {
	var stale []string
	for _, out := range outputs {
		diff, err := a.writer.Diff(out.Name, out.Text)
		if err != nil {
			return err
		}
		if diff == "" {
			continue
		}
		stale = append(stale, relativeTo(root, out.Name))
		_, _ = io.WriteString(a.stdout, output.ColorDiff(output.New(a.stdout), diff))
	}

	if len(stale) > 0 {
		return zerr.With(domain.ErrOutputStale, "files", strings.Join(stale, ", "))
	}
	a.logger.Info(fmt.Sprintf("%d bundle(s) up to date", len(outputs)))
	return nil
}
