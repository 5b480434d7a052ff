// Package resolver resolves import specifiers through the compiler's module resolution.
package resolver

import (
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// OptionsSource provides the effective compiler options of a directory.
type OptionsSource interface {
	Base() domain.EffectiveOptions
	Lookup(dir string) (domain.EffectiveOptions, error)
}

// Bridge answers the build driver's resolve requests.
type Bridge struct {
	compiler ports.Compiler
	options  OptionsSource
	resolved domain.ResolvedOptions
}

// NewBridge creates a Bridge.
func NewBridge(compiler ports.Compiler, options OptionsSource, resolved domain.ResolvedOptions) *Bridge {
	return &Bridge{
		compiler: compiler,
		options:  options,
		resolved: resolved,
	}
}

// Resolve resolves specifier as imported from importer.
//
// The boolean is false when the compiler cannot resolve the specifier; the driver then
// applies its own default resolution. Dependency packages resolve to an external result
// carrying the untouched specifier unless the build respects externals.
func (b *Bridge) Resolve(specifier, importer string) (domain.ResolveResult, bool, error) {
	if importer == "" {
		return domain.ResolveResult{}, false, nil
	}

	importer = strings.ReplaceAll(importer, `\`, "/")

	opts, err := b.optionsFor(specifier, importer)
	if err != nil {
		return domain.ResolveResult{}, false, err
	}

	resolved, err := b.compiler.ResolveModuleName(specifier, importer, opts)
	if err != nil {
		return domain.ResolveResult{}, false, zerr.With(zerr.With(err, "specifier", specifier), "importer", importer)
	}
	if resolved == nil {
		return domain.ResolveResult{}, false, nil
	}

	if resolved.IsExternalLibraryImport && !b.resolved.RespectExternal {
		return domain.ResolveResult{ID: specifier, External: true}, true, nil
	}

	id, err := filepath.Abs(filepath.FromSlash(resolved.ResolvedFileName))
	if err != nil {
		return domain.ResolveResult{}, false, zerr.With(zerr.Wrap(err, "failed to make path absolute"), "path", resolved.ResolvedFileName)
	}
	return domain.ResolveResult{ID: id}, true, nil
}

// optionsFor picks the options governing the resolution. The options depend on where the
// target lives, which is what resolution is supposed to find out, so the directory is taken
// from a plain join of the specifier onto the importer's directory.
func (b *Bridge) optionsFor(specifier, importer string) (domain.EffectiveOptions, error) {
	if !b.resolved.HasCustomConfig() {
		return b.options.Base(), nil
	}

	importerDir := filepath.Dir(filepath.FromSlash(importer))
	candidateDir := importerDir
	if domain.IsRelativeSpecifier(specifier) {
		candidateDir = filepath.Dir(filepath.Join(importerDir, filepath.FromSlash(specifier)))
	}
	return b.options.Lookup(candidateDir)
}
