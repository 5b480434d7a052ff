package domain

import "maps"

// CompilerOptions holds compiler options in their tsconfig JSON form, e.g. {"target": "ESNext"}.
// The compiler service converts them into its own representation.
type CompilerOptions map[string]any

// DefaultCompilerOptions returns the options forced onto every compilation unit so that
// the compiler produces declarations only.
func DefaultCompilerOptions() CompilerOptions {
	return CompilerOptions{
		"declaration":         true,
		"noEmit":              false,
		"emitDeclarationOnly": true,
		"noEmitOnError":       true,
		"checkJs":             false,
		"declarationMap":      false,
		"skipLibCheck":        true,
		"preserveSymlinks":    true,
		"target":              "ESNext",
		"resolveJsonModule":   true,
	}
}

// Merge returns a new option set with overrides applied on top of o.
func (o CompilerOptions) Merge(overrides CompilerOptions) CompilerOptions {
	merged := make(CompilerOptions, len(o)+len(overrides))
	maps.Copy(merged, o)
	maps.Copy(merged, overrides)
	return merged
}

// Clone returns a shallow copy of o.
func (o CompilerOptions) Clone() CompilerOptions {
	if o == nil {
		return nil
	}
	return maps.Clone(o)
}

// ResolvedOptions is the build-wide configuration computed once at setup.
type ResolvedOptions struct {
	// CompilerOptions are the user supplied overrides.
	CompilerOptions CompilerOptions
	// Tsconfig is the custom compiler configuration. A bare file name is looked up as the
	// nearest ancestor of each directory; a path applies to the whole build.
	Tsconfig string
	// RespectExternal makes imports of dependency packages part of the bundle.
	RespectExternal bool
}

// HasCustomConfig reports whether a custom compiler configuration is in effect.
func (o ResolvedOptions) HasCustomConfig() bool {
	return o.Tsconfig != ""
}

// EffectiveOptions are the compiler options governing one directory.
type EffectiveOptions struct {
	// ConfigPath is the compiler configuration the options were read from, empty if none.
	ConfigPath string
	// CompilerOptions are applied on top of the options parsed from ConfigPath.
	CompilerOptions CompilerOptions
	// DeclarationFiles are the declaration files ConfigPath includes.
	DeclarationFiles []string
}

// SameConfig reports whether o and other come from the same compiler configuration.
func (o EffectiveOptions) SameConfig(other EffectiveOptions) bool {
	return o.ConfigPath == other.ConfigPath
}

// ParsedConfig is the part of a parsed compiler configuration the orchestrator uses.
type ParsedConfig struct {
	// FileNames are the absolute paths of every file the configuration includes.
	FileNames []string
}
