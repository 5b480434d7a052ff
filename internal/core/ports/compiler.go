// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/dts/internal/core/domain"
)

//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks

// Compiler is the type-checking compiler service the orchestrator drives.
// Resolution, parsing and emission are delegated to it and never reimplemented.
type Compiler interface {
	ModuleScanner

	// CreateProgram creates a compilation unit rooted at rootNames.
	CreateProgram(rootNames []string, opts domain.EffectiveOptions) (Program, error)

	// ResolveModuleName runs the compiler's module resolution for specifier as imported from
	// importer. It returns nil when the specifier does not resolve.
	ResolveModuleName(specifier, importer string, opts domain.EffectiveOptions) (*domain.ResolvedModuleName, error)

	// ParseConfig reads and parses a compiler configuration file.
	// Diagnostics reported while parsing are returned as a domain.ErrTsconfigInvalid error.
	ParseConfig(configPath string) (*domain.ParsedConfig, error)

	// FileExists reports whether path exists in the compiler's view of the file system.
	FileExists(path string) (bool, error)

	// ReadFile returns the text of path. The boolean is false when the file does not exist.
	ReadFile(path string) (string, bool, error)

	// Reset discards every program and cached configuration, ending a build.
	Reset() error

	// Close stops the compiler service.
	Close() error
}

// ModuleScanner parses the import and export structure of declaration text.
type ModuleScanner interface {
	// ScanModule parses text as the declaration file fileName.
	ScanModule(fileName, text string) (*domain.ModuleSyntax, error)
}

// Program is one compilation unit owned by the compiler service.
type Program interface {
	// SourceFile returns the parsed file indexed under fileName, nil if the unit did not parse it.
	SourceFile(fileName string) (*domain.SourceFile, error)

	// SourceFileNames lists every file the unit parsed.
	SourceFileNames() ([]string, error)

	// EmitDeclarations emits declarations only for the given source file.
	EmitDeclarations(source *domain.SourceFile) (domain.EmitResult, error)
}

// CompilerLauncher starts compiler services.
type CompilerLauncher interface {
	// Launch starts a compiler service whose relative paths resolve against cwd.
	Launch(ctx context.Context, cwd string) (Compiler, error)
}
