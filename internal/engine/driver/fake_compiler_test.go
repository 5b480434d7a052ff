package driver_test

import (
	"path"
	"slices"
	"strings"
	"testing/fstest"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/dts/internal/testutil/declscan"
)

// fakeCompiler serves a fixed set of files. Programs parse their roots and every file reachable
// through relative imports; emission returns the declaration text registered for a file.
type fakeCompiler struct {
	root  string
	files fstest.MapFS
	decls map[string]string
	// packages maps bare specifiers to the declaration file of a dependency package.
	packages map[string]string
	emits    map[string]int
}

func newFakeCompiler(root string, files fstest.MapFS, decls map[string]string) *fakeCompiler {
	return &fakeCompiler{
		root:     root,
		files:    files,
		decls:    decls,
		packages: map[string]string{},
		emits:    map[string]int{},
	}
}

func (c *fakeCompiler) rel(p string) string {
	return strings.TrimPrefix(strings.TrimPrefix(p, c.root), "/")
}

func (c *fakeCompiler) exists(p string) bool {
	_, ok := c.files[c.rel(p)]
	return ok
}

func (c *fakeCompiler) resolve(specifier, importer string) string {
	if !domain.IsRelativeSpecifier(specifier) {
		return c.packages[specifier]
	}
	base := path.Join(path.Dir(importer), specifier)
	for _, candidate := range []string{base + ".ts", base + ".d.ts", base} {
		if c.exists(candidate) && domain.IsScriptFile(candidate) {
			return candidate
		}
	}
	return ""
}

func (c *fakeCompiler) CreateProgram(rootNames []string, _ domain.EffectiveOptions) (ports.Program, error) {
	p := &fakeProgram{compiler: c}
	queue := slices.Clone(rootNames)
	for len(queue) > 0 {
		name := domain.NormalizePath(queue[0])
		queue = queue[1:]
		if slices.Contains(p.names, name) || !c.exists(name) {
			continue
		}
		p.names = append(p.names, name)
		for _, ref := range declscan.Scan(string(c.files[c.rel(name)].Data)).Dependencies() {
			if target := c.resolve(ref.Specifier, name); target != "" && domain.IsRelativeSpecifier(ref.Specifier) {
				queue = append(queue, target)
			}
		}
	}
	return p, nil
}

func (c *fakeCompiler) ResolveModuleName(specifier, importer string, _ domain.EffectiveOptions) (*domain.ResolvedModuleName, error) {
	target := c.resolve(specifier, importer)
	if target == "" {
		return nil, nil
	}
	return &domain.ResolvedModuleName{
		ResolvedFileName:        target,
		IsExternalLibraryImport: strings.Contains(target, "/node_modules/"),
	}, nil
}

func (c *fakeCompiler) ParseConfig(string) (*domain.ParsedConfig, error) {
	return &domain.ParsedConfig{}, nil
}

func (c *fakeCompiler) FileExists(p string) (bool, error) {
	return c.exists(p), nil
}

func (c *fakeCompiler) ReadFile(p string) (string, bool, error) {
	f, ok := c.files[c.rel(p)]
	if !ok {
		return "", false, nil
	}
	return string(f.Data), true, nil
}

func (c *fakeCompiler) ScanModule(fileName, text string) (*domain.ModuleSyntax, error) {
	return declscan.Scanner{}.ScanModule(fileName, text)
}

func (c *fakeCompiler) Reset() error { return nil }

func (c *fakeCompiler) Close() error { return nil }

type fakeProgram struct {
	compiler *fakeCompiler
	names    []string
}

func (p *fakeProgram) SourceFile(fileName string) (*domain.SourceFile, error) {
	if !slices.Contains(p.names, fileName) {
		return nil, nil
	}
	return &domain.SourceFile{FileName: fileName, Text: string(p.compiler.files[p.compiler.rel(fileName)].Data)}, nil
}

func (p *fakeProgram) SourceFileNames() ([]string, error) {
	return slices.Clone(p.names), nil
}

func (p *fakeProgram) EmitDeclarations(source *domain.SourceFile) (domain.EmitResult, error) {
	p.compiler.emits[source.FileName]++
	text, ok := p.compiler.decls[source.FileName]
	if !ok {
		return domain.EmitResult{
			Skipped: true,
			Diagnostics: []domain.Diagnostic{{
				Category: domain.CategoryError,
				Code:     2322,
				File:     source.FileName,
				Line:     1,
				Column:   1,
				Message:  "Type 'string' is not assignable to type 'number'.",
			}},
		}, nil
	}
	return domain.EmitResult{
		Outputs: []domain.OutputFile{{Name: domain.DeclarationName(source.FileName), Text: text}},
	}, nil
}
