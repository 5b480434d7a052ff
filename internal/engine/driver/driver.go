// Package driver walks the module graph of a build and calls the plugin hooks for every module.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// Hooks is the plugin protocol the driver speaks.
type Hooks interface {
	Name() string
	Options(ctx context.Context, opts domain.BuildOptions) (domain.BuildOptions, error)
	ResolveID(ctx context.Context, specifier, importer string) (domain.ResolveResult, bool, error)
	Transform(ctx context.Context, pctx ports.PluginContext, code, id string) (string, bool, error)
	OutputOptions(opts domain.OutputOptions) domain.OutputOptions
	RenderChunk(code string, chunk domain.Chunk) (string, error)
}

// Result is the outcome of a build.
type Result struct {
	// Outputs are the rendered entry chunks, named by their output path.
	Outputs []domain.OutputFile
	// WatchFiles are the files the build depends on.
	WatchFiles []string
	// Warnings collects the non-fatal problems reported during the build.
	Warnings []string
}

// Driver runs builds sequentially: hooks are never called concurrently.
type Driver struct {
	fs      ports.FileSystem
	scanner ports.ModuleScanner
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates a Driver. The scanner finds the imports of every transformed module.
func New(fs ports.FileSystem, scanner ports.ModuleScanner, logger ports.Logger, tracer ports.Tracer) *Driver {
	return &Driver{
		fs:      fs,
		scanner: scanner,
		logger:  logger,
		tracer:  tracer,
	}
}

// Build runs one build through hooks and renders a chunk per entry point.
func (d *Driver) Build(
	ctx context.Context,
	hooks Hooks,
	opts domain.BuildOptions,
	out domain.OutputOptions,
) (*Result, error) {
	ctx, span := d.tracer.Start(ctx, "build", ports.WithAttribute("plugin", hooks.Name()))
	defer span.End()

	opts, err := hooks.Options(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	b := &build{
		driver:  d,
		hooks:   hooks,
		root:    opts.Root,
		modules: make(map[string]*module),
		watched: make(map[string]struct{}),
	}

	entries := opts.Input.Entries()
	entryIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		id, err := b.resolveEntry(ctx, entry.File)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if err := b.load(ctx, id); err != nil {
			span.RecordError(err)
			return nil, err
		}
		entryIDs = append(entryIDs, id)
	}

	out = hooks.OutputOptions(out)

	result := &Result{}
	for i, entry := range entries {
		chunk := b.chunk(entry, entryIDs[i], out)
		code, err := b.render(ctx, chunk)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		result.Outputs = append(result.Outputs, domain.OutputFile{
			Name: filepath.Join(out.Dir, chunk.FileName),
			Text: code,
		})
	}

	result.WatchFiles = b.watchFiles
	result.Warnings = b.warnings
	span.SetAttribute("modules", len(b.modules))
	return result, nil
}

type edge struct {
	specifier string
	id        string
	external  bool
}

type module struct {
	id       string
	code     string
	syntax   *domain.ModuleSyntax
	included bool
	imports  []edge
}

// build is the state of one Build call. It is the PluginContext handed to hooks.
type build struct {
	driver *Driver
	hooks  Hooks
	root   string

	modules    map[string]*module
	watched    map[string]struct{}
	watchFiles []string
	warnings   []string
}

var _ ports.PluginContext = (*build)(nil)

// AddWatchFile implements ports.PluginContext.
func (b *build) AddWatchFile(path string) {
	if _, ok := b.watched[path]; ok {
		return
	}
	b.watched[path] = struct{}{}
	b.watchFiles = append(b.watchFiles, path)
}

// Warn implements ports.PluginContext.
func (b *build) Warn(msg string) {
	b.warnings = append(b.warnings, msg)
	b.driver.logger.Warn(msg)
}

func (b *build) resolveEntry(ctx context.Context, file string) (string, error) {
	res, ok, err := b.hooks.ResolveID(ctx, file, "")
	if err != nil {
		return "", err
	}
	if ok && !res.External {
		return res.ID, nil
	}

	id := file
	if !filepath.IsAbs(id) {
		id = filepath.Join(b.root, id)
	}
	if !b.isFile(id) {
		return "", zerr.With(domain.ErrEntryNotFound, "entry", file)
	}
	return id, nil
}

func (b *build) load(ctx context.Context, id string) error {
	if _, seen := b.modules[id]; seen {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := &module{id: id}
	b.modules[id] = m

	raw, err := b.driver.fs.ReadFile(id)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModuleReadFailed.Error()), "module", id)
	}
	b.AddWatchFile(id)

	code, ok, err := b.transform(ctx, string(raw), id)
	if err != nil {
		return err
	}
	if !ok {
		if !domain.IsDeclarationFile(id) {
			b.Warn("no declarations produced for " + b.relative(id))
			return nil
		}
		code = string(raw)
	}
	syntax, err := b.driver.scanner.ScanModule(id, code)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModuleScanFailed.Error()), "module", id)
	}
	m.code = code
	m.syntax = syntax
	m.included = true

	for _, ref := range syntax.Dependencies() {
		var e edge
		if ref.Kind == domain.ReferencePath {
			var found bool
			if e, found = b.referencedFile(ref.Specifier, id); !found {
				continue
			}
		} else if e, err = b.resolve(ctx, ref.Specifier, id); err != nil {
			return err
		}
		m.imports = append(m.imports, e)
		if e.external {
			continue
		}
		if err := b.load(ctx, e.id); err != nil {
			return err
		}
	}
	return nil
}

func (b *build) transform(ctx context.Context, code, id string) (string, bool, error) {
	ctx, span := b.driver.tracer.Start(ctx, "transform", ports.WithAttribute("module", b.relative(id)))
	defer span.End()

	out, ok, err := b.hooks.Transform(ctx, b, code, id)
	if err != nil {
		span.RecordError(err)
		return "", false, err
	}
	span.SetAttribute("changed", ok)
	return out, ok, nil
}

func (b *build) resolve(ctx context.Context, specifier, importer string) (edge, error) {
	res, ok, err := b.hooks.ResolveID(ctx, specifier, importer)
	if err != nil {
		return edge{}, err
	}
	if ok {
		return edge{specifier: specifier, id: res.ID, external: res.External}, nil
	}

	if domain.IsRelativeSpecifier(specifier) {
		base := filepath.Join(filepath.Dir(importer), filepath.FromSlash(specifier))
		if id, found := b.withExtension(base); found {
			return edge{specifier: specifier, id: id}, nil
		}
		b.Warn(fmt.Sprintf("could not resolve %q from %s", specifier, b.relative(importer)))
	} else {
		b.driver.logger.Debug(fmt.Sprintf("treating %q as external", specifier))
	}
	return edge{specifier: specifier, id: specifier, external: true}, nil
}

// referencedFile locates the target of a triple-slash path reference, which is always relative
// to the referencing file.
func (b *build) referencedFile(path, importer string) (edge, bool) {
	id := filepath.Join(filepath.Dir(importer), filepath.FromSlash(path))
	if !b.isFile(id) {
		b.Warn(fmt.Sprintf("could not find referenced file %q from %s", path, b.relative(importer)))
		return edge{}, false
	}
	return edge{specifier: path, id: id}, true
}

var candidateExtensions = []string{".d.ts", ".ts", ".tsx", ".d.mts", ".mts", ".d.cts", ".cts"}

// withExtension is the driver's default resolution for relative specifiers the compiler could not
// resolve: the path itself, then each known extension, then an index file.
func (b *build) withExtension(base string) (string, bool) {
	if b.isFile(base) {
		return base, true
	}

	stems := []string{base}
	if trimmed := strings.TrimSuffix(base, ".js"); trimmed != base {
		stems = append(stems, trimmed)
	}
	stems = append(stems, filepath.Join(base, "index"))

	for _, stem := range stems {
		for _, ext := range candidateExtensions {
			if b.isFile(stem + ext) {
				return stem + ext, true
			}
		}
	}
	return "", false
}

func (b *build) isFile(path string) bool {
	info, err := b.driver.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// chunk collects the modules reachable from the entry, dependencies first.
func (b *build) chunk(entry domain.Entry, entryID string, out domain.OutputOptions) domain.Chunk {
	chunk := domain.Chunk{
		Name:        entry.Name,
		FileName:    out.EntryFileName(entry.Name),
		EntryModule: entryID,
		Root:        b.root,
	}

	visited := make(map[string]bool)
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		m := b.modules[id]
		if m == nil || !m.included {
			return
		}

		imports := make(map[string]string)
		for _, e := range m.imports {
			if e.external {
				if !slices.Contains(chunk.Externals, e.specifier) {
					chunk.Externals = append(chunk.Externals, e.specifier)
				}
				continue
			}
			if dep := b.modules[e.id]; dep != nil && dep.included {
				imports[e.specifier] = e.id
			}
			visit(e.id)
		}

		chunk.Modules = append(chunk.Modules, domain.ChunkModule{
			ID:      id,
			Code:    m.code,
			Syntax:  m.syntax,
			Imports: imports,
		})
	}
	visit(entryID)

	return chunk
}

func (b *build) render(ctx context.Context, chunk domain.Chunk) (string, error) {
	_, span := b.driver.tracer.Start(ctx, "render", ports.WithAttribute("chunk", chunk.FileName))
	defer span.End()

	parts := make([]string, 0, len(chunk.Modules))
	for _, m := range chunk.Modules {
		parts = append(parts, m.Code)
	}

	code, err := b.hooks.RenderChunk(strings.Join(parts, "\n"), chunk)
	if err != nil {
		span.RecordError(err)
		return "", zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "chunk", chunk.FileName)
	}
	return code, nil
}

func (b *build) relative(path string) string {
	if rel, err := filepath.Rel(b.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
