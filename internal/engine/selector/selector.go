// Package selector decides, for every candidate file, where its declarations come from.
package selector

import (
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// Locator finds the text of a file and the unit that owns it.
type Locator interface {
	Locate(fileName, rawText string) (*domain.ResolvedModule, error)
	Program(id domain.UnitID) ports.Program
	SourceFileNames(id domain.UnitID) ([]string, error)
}

// FileReader reads files through the compiler's view of the file system.
type FileReader interface {
	ReadFile(path string) (string, bool, error)
}

// Selector runs the declaration strategies in order and hands the result to the merge stage.
//
// The strategies are tried in this order and the first one that finds a module wins:
//  1. the candidate is a declaration file and is passed through;
//  2. a declaration file sits next to the candidate and is used instead of it;
//  3. the compiler emits declarations for the candidate.
type Selector struct {
	locator Locator
	reader  FileReader
	bundler ports.Bundler
	logger  ports.Logger
	cwd     string
}

// New creates a Selector. Diagnostics are printed relative to cwd.
func New(locator Locator, reader FileReader, bundler ports.Bundler, logger ports.Logger, cwd string) *Selector {
	return &Selector{
		locator: locator,
		reader:  reader,
		bundler: bundler,
		logger:  logger,
		cwd:     cwd,
	}
}

// Select produces the declaration text for the candidate file id whose raw text is code.
// The boolean is false when the file contributes no declarations.
func (s *Selector) Select(pctx ports.PluginContext, code, id string) (string, bool, error) {
	switch {
	case domain.IsDeclarationFile(id):
		return s.passthrough(pctx, code, id)
	case !domain.IsScriptFile(id):
		return "", false, nil
	}

	text, ok, err := s.sibling(pctx, id)
	if err != nil || ok {
		return text, ok, err
	}
	return s.emit(pctx, code, id)
}

func (s *Selector) passthrough(pctx ports.PluginContext, code, id string) (string, bool, error) {
	module, err := s.locator.Locate(id, code)
	if err != nil || module == nil {
		return "", false, err
	}
	s.watch(pctx, module, id)
	return s.bundler.Transform(module.Code, id)
}

func (s *Selector) sibling(pctx ports.PluginContext, id string) (string, bool, error) {
	declarationID := domain.DeclarationName(id)

	raw, exists, err := s.reader.ReadFile(declarationID)
	if err != nil || !exists {
		return "", false, err
	}

	module, err := s.locator.Locate(declarationID, raw)
	if err != nil || module == nil {
		return "", false, err
	}
	s.watch(pctx, module, id)
	return s.bundler.Transform(module.Code, declarationID)
}

func (s *Selector) emit(pctx ports.PluginContext, code, id string) (string, bool, error) {
	module, err := s.locator.Locate(id, code)
	if err != nil {
		return "", false, err
	}
	if !module.Owned() {
		return "", false, nil
	}
	s.watch(pctx, module, id)

	program := s.locator.Program(module.Unit)
	if program == nil {
		return "", false, nil
	}

	result, err := program.EmitDeclarations(module.Source)
	if err != nil {
		return "", false, zerr.With(err, "file", id)
	}

	if result.Skipped {
		if errs := result.Errors(); len(errs) > 0 {
			s.logger.Error(zerr.New(strings.TrimRight(domain.FormatDiagnostics(errs, s.cwd), "\n")))
			return "", false, zerr.With(zerr.Wrap(domain.ErrCompileFailed, "declarations were not emitted"), "file", id)
		}
	}

	text, ok := result.Declaration()
	if !ok {
		return "", false, nil
	}
	return s.bundler.Transform(text, domain.DeclarationName(id))
}

// watch registers every file of the module's unit that lives under the candidate's directory.
func (s *Selector) watch(pctx ports.PluginContext, module *domain.ResolvedModule, id string) {
	if module.Unit == domain.NoUnit || pctx == nil {
		return
	}
	names, err := s.locator.SourceFileNames(module.Unit)
	if err != nil {
		s.logger.Debug("skipping watch files: " + err.Error())
		return
	}
	dir := strings.TrimSuffix(domain.NormalizePath(filepath.Dir(id)), "/") + "/"
	for _, name := range names {
		if strings.HasPrefix(name, dir) {
			pctx.AddWatchFile(filepath.FromSlash(name))
		}
	}
}
