// Package merge flattens the declarations of every module of a chunk into one declaration file.
package merge

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
)

// Header starts every rendered bundle.
const Header = "// Generated by dts. Do not edit.\n"

var (
	sourceMappingURL = regexp.MustCompile(`(?m)^[ \t]*//# sourceMappingURL=.*(?:\n|$)`)
	outputExtension  = regexp.MustCompile(`\.(c|m)?js$`)
)

var _ ports.Bundler = (*Merger)(nil)

// Merger implements ports.Bundler.
type Merger struct{}

// New creates a Merger.
func New() *Merger {
	return &Merger{}
}

// Options implements ports.Bundler.
func (m *Merger) Options(opts domain.BuildOptions) (domain.BuildOptions, error) {
	return opts, nil
}

// Transform normalizes the declaration text of one module. Files that are not declarations
// are left unchanged.
func (m *Merger) Transform(code, fileName string) (string, bool, error) {
	if !domain.IsDeclarationFile(fileName) {
		return "", false, nil
	}

	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = sourceMappingURL.ReplaceAllString(code, "")
	return strings.TrimRight(code, " \t\n") + "\n", true, nil
}

// OutputOptions implements ports.Bundler. Script output names are turned into declaration names.
func (m *Merger) OutputOptions(opts domain.OutputOptions) domain.OutputOptions {
	if opts.EntryFileNames == "" {
		opts.EntryFileNames = domain.DefaultEntryFileNames
	}
	opts.EntryFileNames = outputExtension.ReplaceAllString(opts.EntryFileNames, ".d.${1}ts")
	if opts.Format == "" {
		opts.Format = "es"
	}
	return opts
}

// RenderChunk implements ports.Bundler. The entry module's declarations stay at the top level
// so the bundle is a module of its own. Every other module of the chunk becomes a namespace that
// imports between modules are rewritten to. Externals are kept as written.
func (m *Merger) RenderChunk(_ string, chunk domain.Chunk) (string, error) {
	if len(chunk.Modules) == 0 {
		return Header, nil
	}
	return newRenderer(chunk).render(), nil
}

// ModuleName returns the name a module is known by in the bundle: its forward-slash path
// relative to root without the extension. Modules outside root keep their absolute path.
func ModuleName(root, id string) string {
	name := id
	if rel, err := filepath.Rel(root, id); err == nil && !strings.HasPrefix(rel, "..") {
		name = rel
	}
	return domain.TrimScriptExtension(filepath.ToSlash(name))
}
