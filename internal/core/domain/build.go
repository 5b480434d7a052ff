package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Input lists the entry points of a build, either as plain files or as a name to file mapping.
type Input struct {
	Files []string
	Named map[string]string
}

// IsEmpty reports whether the input names no entry point.
func (in Input) IsEmpty() bool {
	return len(in.Files) == 0 && len(in.Named) == 0
}

// Normalize turns a list of several unnamed entries into an explicit mapping whose names
// are the file names stripped of their extension. Absolute entries are named by their base
// name, relative ones keep their directories. Later entries win on name collisions.
func (in Input) Normalize() Input {
	if len(in.Named) > 0 || len(in.Files) <= 1 {
		return in
	}
	named := make(map[string]string, len(in.Files))
	for _, file := range in.Files {
		named[entryName(file)] = file
	}
	return Input{Named: named}
}

// Values returns the entry files in a stable order.
func (in Input) Values() []string {
	if len(in.Named) == 0 {
		return slices.Clone(in.Files)
	}
	values := make([]string, 0, len(in.Named))
	for _, name := range in.names() {
		values = append(values, in.Named[name])
	}
	return values
}

// Entry is one named entry point.
type Entry struct {
	Name string
	File string
}

// Entries returns the named entry points in a stable order.
func (in Input) Entries() []Entry {
	if len(in.Named) == 0 {
		entries := make([]Entry, 0, len(in.Files))
		for _, file := range in.Files {
			entries = append(entries, Entry{Name: filepath.Base(TrimScriptExtension(file)), File: file})
		}
		return entries
	}
	entries := make([]Entry, 0, len(in.Named))
	for _, name := range in.names() {
		entries = append(entries, Entry{Name: name, File: in.Named[name]})
	}
	return entries
}

func (in Input) names() []string {
	names := make([]string, 0, len(in.Named))
	for name := range in.Named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func entryName(file string) string {
	name := TrimScriptExtension(file)
	if filepath.IsAbs(file) {
		return filepath.Base(name)
	}
	return filepath.Clean(name)
}

// BuildOptions is the configuration the build driver passes through the options hook.
type BuildOptions struct {
	Input Input
	// Root is the directory relative entries and module ids are resolved against.
	Root string
}

// OutputOptions configures how entry chunks are written.
type OutputOptions struct {
	Dir            string
	EntryFileNames string
	Format         string
}

// EntryFileName expands the EntryFileNames pattern for an entry chunk.
func (o OutputOptions) EntryFileName(name string) string {
	pattern := o.EntryFileNames
	if pattern == "" {
		pattern = DefaultEntryFileNames
	}
	return strings.ReplaceAll(pattern, "[name]", name)
}

// ChunkModule is one module rendered into a chunk.
type ChunkModule struct {
	// ID is the absolute path of the module.
	ID string
	// Code is the declaration text the transform hook produced.
	Code string
	// Syntax is the import and export structure of Code.
	Syntax *ModuleSyntax
	// Imports maps each internal import specifier and path reference of the module to the
	// resolved module ID.
	Imports map[string]string
}

// Chunk is the set of modules reachable from one entry point.
type Chunk struct {
	Name     string
	FileName string
	// EntryModule is the ID of the entry module.
	EntryModule string
	// Modules are ordered dependencies first; the entry module is last.
	Modules []ChunkModule
	// Externals are the specifiers left for the consumer to resolve.
	Externals []string
	// Root is the directory module ids are made relative to.
	Root string
}

// Config is the project configuration after dts.yaml and command line flags were merged.
type Config struct {
	// Root is the directory holding dts.yaml, or the working directory without one.
	Root            string
	Input           Input
	Output          string
	Tsconfig        string
	RespectExternal bool
	CompilerOptions CompilerOptions
}

// ResolvedOptions returns the build-wide options derived from c.
func (c *Config) ResolvedOptions() ResolvedOptions {
	return ResolvedOptions{
		CompilerOptions: c.CompilerOptions.Clone(),
		Tsconfig:        c.Tsconfig,
		RespectExternal: c.RespectExternal,
	}
}
