package tsc

import (
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
)

// Program is a compilation unit living in the bridge process, addressed by its handle.
// Parsed source files are cached since the bridge never reparses them.
type Program struct {
	client  *client
	handle  int
	sources map[string]*domain.SourceFile
	names   []string
}

var _ ports.Program = (*Program)(nil)

func newProgram(c *client, handle int) *Program {
	return &Program{
		client:  c,
		handle:  handle,
		sources: make(map[string]*domain.SourceFile),
	}
}

// SourceFile implements ports.Program.
func (p *Program) SourceFile(fileName string) (*domain.SourceFile, error) {
	if source, ok := p.sources[fileName]; ok {
		return source, nil
	}

	var source *domain.SourceFile
	err := p.client.call("sourceFile", struct {
		Program  int    `json:"program"`
		FileName string `json:"fileName"`
	}{p.handle, fileName}, &source)
	if err != nil {
		return nil, err
	}
	p.sources[fileName] = source
	return source, nil
}

// SourceFileNames implements ports.Program.
func (p *Program) SourceFileNames() ([]string, error) {
	if p.names != nil {
		return p.names, nil
	}

	var names []string
	err := p.client.call("sourceFileNames", struct {
		Program int `json:"program"`
	}{p.handle}, &names)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	p.names = names
	return names, nil
}

type wireDiagnostic struct {
	Category int    `json:"category"`
	Code     int    `json:"code"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

// EmitDeclarations implements ports.Program.
func (p *Program) EmitDeclarations(source *domain.SourceFile) (domain.EmitResult, error) {
	var res struct {
		Skipped     bool                `json:"skipped"`
		Outputs     []domain.OutputFile `json:"outputs"`
		Diagnostics []wireDiagnostic    `json:"diagnostics"`
	}
	err := p.client.call("emit", struct {
		Program  int    `json:"program"`
		FileName string `json:"fileName"`
	}{p.handle, source.FileName}, &res)
	if err != nil {
		return domain.EmitResult{}, err
	}

	result := domain.EmitResult{Skipped: res.Skipped, Outputs: res.Outputs}
	for _, d := range res.Diagnostics {
		result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
			Category: domain.DiagnosticCategory(d.Category),
			Code:     d.Code,
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Message:  d.Message,
		})
	}
	return result, nil
}
