package domain

// UnitID addresses a compilation unit in the registry. Handles are stable for the whole build.
type UnitID int

// NoUnit marks a module without an owning compilation unit.
const NoUnit UnitID = -1

// SourceFile is a file parsed by a compilation unit.
type SourceFile struct {
	// FileName is the normalized (forward-slash) path the compiler indexes the file by.
	FileName string
	// Text is the full text of the file.
	Text string
}

// ResolvedModule is the result of locating a file for declaration generation.
type ResolvedModule struct {
	// Code is the module's text.
	Code string
	// Source is the parsed file, nil in passthrough mode.
	Source *SourceFile
	// Unit is the compilation unit that parsed Source, NoUnit in passthrough mode.
	Unit UnitID
}

// Owned reports whether the module has a parsed source and an owning unit.
func (m *ResolvedModule) Owned() bool {
	return m != nil && m.Source != nil && m.Unit != NoUnit
}

// ResolvedModuleName is the compiler's answer to a module resolution request.
type ResolvedModuleName struct {
	// ResolvedFileName is the file the specifier resolved to, forward-slash separated.
	ResolvedFileName string
	// IsExternalLibraryImport is set when the file belongs to a dependency package.
	IsExternalLibraryImport bool
}

// ResolveResult is what the resolve hook hands back to the build driver.
type ResolveResult struct {
	// ID is the absolute path of the module, or the untouched specifier for externals.
	ID string
	// External excludes the module from the dependency graph.
	External bool
}
