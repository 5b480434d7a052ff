// Package plugin wires the orchestration core into the build driver's hooks.
package plugin

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/dts/internal/engine/options"
	"go.trai.ch/dts/internal/engine/registry"
	"go.trai.ch/dts/internal/engine/resolver"
	"go.trai.ch/dts/internal/engine/selector"
	"go.trai.ch/zerr"
)

// Name is the plugin name reported to the build driver.
const Name = "dts"

// Plugin holds the state of one build: the options cache, the unit registry, the resolution
// bridge and the strategy selector. A new Plugin is created for every build.
type Plugin struct {
	compiler ports.Compiler
	bundler  ports.Bundler
	logger   ports.Logger
	resolved domain.ResolvedOptions
	cwd      string

	cache    *options.Cache
	registry *registry.Registry
	bridge   *resolver.Bridge
	selector *selector.Selector
}

// New creates a Plugin for one build rooted at cwd.
func New(
	compiler ports.Compiler,
	bundler ports.Bundler,
	logger ports.Logger,
	resolved domain.ResolvedOptions,
	cwd string,
) *Plugin {
	cache := options.NewCache(compiler, logger, resolved, cwd)
	reg := registry.New(compiler, cache)

	return &Plugin{
		compiler: compiler,
		bundler:  bundler,
		logger:   logger,
		resolved: resolved,
		cwd:      cwd,
		cache:    cache,
		registry: reg,
		bridge:   resolver.NewBridge(compiler, cache, resolved),
		selector: selector.New(reg, compiler, bundler, logger, cwd),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return Name
}

// Registry exposes the build's compilation units.
func (p *Plugin) Registry() *registry.Registry {
	return p.registry
}

// Options normalizes the entry points, validates the custom tsconfig and seeds the initial
// compilation units before handing the options to the merge stage.
func (p *Plugin) Options(_ context.Context, opts domain.BuildOptions) (domain.BuildOptions, error) {
	if opts.Input.IsEmpty() {
		return opts, domain.ErrNoEntryPoints
	}
	if opts.Root == "" {
		opts.Root = p.cwd
	}
	opts.Input = opts.Input.Normalize()

	entries := make([]string, 0, len(opts.Input.Values()))
	for _, entry := range opts.Input.Values() {
		entries = append(entries, p.absolute(entry))
	}

	validated := make(map[string]bool, len(entries))
	for _, entry := range entries {
		dir := filepath.Dir(entry)
		if validated[dir] {
			continue
		}
		validated[dir] = true
		if err := p.cache.Validate(dir); err != nil {
			return opts, err
		}
	}

	if err := p.registry.Seed(entries); err != nil {
		return opts, zerr.Wrap(err, "failed to create compilation units")
	}
	p.logger.Debug(fmt.Sprintf("created %d compilation unit(s) for %d entries", p.registry.Len(), len(entries)))

	return p.bundler.Options(opts)
}

// ResolveID resolves an import through the compiler.
func (p *Plugin) ResolveID(_ context.Context, specifier, importer string) (domain.ResolveResult, bool, error) {
	return p.bridge.Resolve(specifier, importer)
}

// Transform returns the declaration text for id.
func (p *Plugin) Transform(_ context.Context, pctx ports.PluginContext, code, id string) (string, bool, error) {
	return p.selector.Select(pctx, code, id)
}

// OutputOptions forwards to the merge stage.
func (p *Plugin) OutputOptions(opts domain.OutputOptions) domain.OutputOptions {
	return p.bundler.OutputOptions(opts)
}

// RenderChunk forwards to the merge stage.
func (p *Plugin) RenderChunk(code string, chunk domain.Chunk) (string, error) {
	return p.bundler.RenderChunk(code, chunk)
}

func (p *Plugin) absolute(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.cwd, path)
}
