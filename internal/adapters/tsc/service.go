// Package tsc drives the TypeScript compiler through a long-lived node process.
package tsc

import (
	_ "embed"
	"path/filepath"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
)

//go:embed bridge.js
var bridgeScript string

type optionsParams struct {
	ConfigPath      string                 `json:"configPath,omitempty"`
	CompilerOptions domain.CompilerOptions `json:"compilerOptions,omitempty"`
}

func toParams(opts domain.EffectiveOptions) optionsParams {
	return optionsParams{ConfigPath: opts.ConfigPath, CompilerOptions: opts.CompilerOptions}
}

// Service implements ports.Compiler on top of the bridge script.
type Service struct {
	client *client
}

var _ ports.Compiler = (*Service)(nil)

// CreateProgram implements ports.Compiler.
func (s *Service) CreateProgram(rootNames []string, opts domain.EffectiveOptions) (ports.Program, error) {
	names := make([]string, len(rootNames))
	for i, name := range rootNames {
		names[i] = domain.NormalizePath(name)
	}

	var handle int
	err := s.client.call("createProgram", struct {
		RootNames []string      `json:"rootNames"`
		Options   optionsParams `json:"options"`
	}{names, toParams(opts)}, &handle)
	if err != nil {
		return nil, err
	}
	return newProgram(s.client, handle), nil
}

// ResolveModuleName implements ports.Compiler.
func (s *Service) ResolveModuleName(
	specifier, importer string,
	opts domain.EffectiveOptions,
) (*domain.ResolvedModuleName, error) {
	var res *struct {
		ResolvedFileName        string `json:"resolvedFileName"`
		IsExternalLibraryImport bool   `json:"isExternalLibraryImport"`
	}
	err := s.client.call("resolveModuleName", struct {
		Specifier string        `json:"specifier"`
		Importer  string        `json:"importer"`
		Options   optionsParams `json:"options"`
	}{specifier, importer, toParams(opts)}, &res)
	if err != nil || res == nil {
		return nil, err
	}
	return &domain.ResolvedModuleName{
		ResolvedFileName:        res.ResolvedFileName,
		IsExternalLibraryImport: res.IsExternalLibraryImport,
	}, nil
}

// ParseConfig implements ports.Compiler.
func (s *Service) ParseConfig(configPath string) (*domain.ParsedConfig, error) {
	var res struct {
		FileNames []string `json:"fileNames"`
	}
	err := s.client.call("parseConfig", struct {
		ConfigPath string `json:"configPath"`
	}{domain.NormalizePath(configPath)}, &res)
	if err != nil {
		return nil, err
	}

	parsed := &domain.ParsedConfig{FileNames: make([]string, len(res.FileNames))}
	for i, name := range res.FileNames {
		parsed.FileNames[i] = filepath.FromSlash(name)
	}
	return parsed, nil
}

// FileExists implements ports.Compiler.
func (s *Service) FileExists(path string) (bool, error) {
	var exists bool
	err := s.client.call("fileExists", pathParams{domain.NormalizePath(path)}, &exists)
	return exists, err
}

// ReadFile implements ports.Compiler.
func (s *Service) ReadFile(path string) (string, bool, error) {
	var text *string
	if err := s.client.call("readFile", pathParams{domain.NormalizePath(path)}, &text); err != nil {
		return "", false, err
	}
	if text == nil {
		return "", false, nil
	}
	return *text, true, nil
}

// ScanModule implements ports.ModuleScanner.
func (s *Service) ScanModule(fileName, text string) (*domain.ModuleSyntax, error) {
	var syntax domain.ModuleSyntax
	err := s.client.call("scanModule", struct {
		FileName string `json:"fileName"`
		Text     string `json:"text"`
	}{domain.NormalizePath(fileName), text}, &syntax)
	if err != nil {
		return nil, err
	}
	return &syntax, nil
}

// Version returns the version of the compiler the bridge loaded.
func (s *Service) Version() (string, error) {
	var version string
	err := s.client.call("version", nil, &version)
	return version, err
}

// Reset implements ports.Compiler.
func (s *Service) Reset() error {
	return s.client.call("reset", nil, nil)
}

// Close implements ports.Compiler.
func (s *Service) Close() error {
	return s.client.close()
}

type pathParams struct {
	Path string `json:"path"`
}
