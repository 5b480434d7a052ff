// Package registry owns the compilation units of a build and locates modules in them.
package registry

import (
	"path/filepath"
	"slices"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// OptionsSource provides the effective compiler options of a directory.
type OptionsSource interface {
	Lookup(dir string) (domain.EffectiveOptions, error)
}

// Unit is a compilation unit. Its root set never changes after creation.
type Unit struct {
	ID      domain.UnitID
	Roots   []string
	Options domain.EffectiveOptions
	Program ports.Program
}

// Registry is the append-only list of compilation units of one build.
// Units are never removed or replaced; a file is owned by the first unit, in creation
// order, that parsed it.
//
// The registry is not safe for concurrent use. The build driver calls it from one
// goroutine; concurrent locates would race on unit creation.
type Registry struct {
	compiler ports.Compiler
	options  OptionsSource
	units    []*Unit
}

// New creates an empty Registry.
func New(compiler ports.Compiler, options OptionsSource) *Registry {
	return &Registry{
		compiler: compiler,
		options:  options,
	}
}

// Len returns the number of units created so far.
func (r *Registry) Len() int {
	return len(r.units)
}

// Unit returns the unit addressed by id, or nil for an unknown handle.
func (r *Registry) Unit(id domain.UnitID) *Unit {
	if id < 0 || int(id) >= len(r.units) {
		return nil
	}
	return r.units[id]
}

// Program returns the compiler program of the unit addressed by id, or nil for an unknown handle.
func (r *Registry) Program(id domain.UnitID) ports.Program {
	unit := r.Unit(id)
	if unit == nil {
		return nil
	}
	return unit.Program
}

// Units returns the units in creation order.
func (r *Registry) Units() []*Unit {
	return slices.Clone(r.units)
}

// Seed creates the initial units for the build's entry points. Consecutive entries governed
// by the same compiler configuration share a unit, which also roots the declaration files
// that configuration includes. Declaration entries get no unit, so a build made only of
// declaration files runs in passthrough mode.
func (r *Registry) Seed(entries []string) error {
	var (
		roots   []string
		current domain.EffectiveOptions
	)

	flush := func() error {
		if len(roots) == 0 {
			return nil
		}
		_, err := r.create(withDeclarations(roots, current.DeclarationFiles), current)
		roots = nil
		return err
	}

	for _, entry := range entries {
		if domain.IsDeclarationFile(entry) {
			continue
		}

		eff, err := r.options.Lookup(filepath.Dir(entry))
		if err != nil {
			return err
		}

		if len(roots) > 0 && !eff.SameConfig(current) {
			if err := flush(); err != nil {
				return err
			}
		}
		if len(roots) == 0 {
			current = eff
		}
		roots = append(roots, entry)
	}

	return flush()
}

// Locate returns the text of fileName together with its owning unit.
//
// With no unit at all, declaration files are passed through verbatim using rawText.
// Otherwise the first unit that parsed fileName wins; failing that, a new unit rooted at
// fileName is created if the file exists. A nil module means the file is not available,
// which is not an error. Errors are reserved for failures talking to the compiler.
func (r *Registry) Locate(fileName, rawText string) (*domain.ResolvedModule, error) {
	if len(r.units) == 0 && domain.IsDeclarationFile(fileName) {
		return &domain.ResolvedModule{Code: rawText, Unit: domain.NoUnit}, nil
	}

	normalized := domain.NormalizePath(fileName)

	for _, unit := range r.units {
		source, err := unit.Program.SourceFile(normalized)
		if err != nil {
			return nil, zerr.With(err, "file", fileName)
		}
		if source != nil {
			return &domain.ResolvedModule{Code: source.Text, Source: source, Unit: unit.ID}, nil
		}
	}

	exists, err := r.compiler.FileExists(fileName)
	if err != nil {
		return nil, zerr.With(err, "file", fileName)
	}
	if !exists {
		return nil, nil
	}

	eff, err := r.options.Lookup(filepath.Dir(fileName))
	if err != nil {
		return nil, err
	}

	unit, err := r.create(withDeclarations([]string{fileName}, eff.DeclarationFiles), eff)
	if err != nil {
		return nil, err
	}

	source, err := unit.Program.SourceFile(normalized)
	if err != nil {
		return nil, zerr.With(err, "file", fileName)
	}
	if source == nil {
		return nil, nil
	}
	return &domain.ResolvedModule{Code: source.Text, Source: source, Unit: unit.ID}, nil
}

// SourceFileNames lists the files parsed by the unit addressed by id.
func (r *Registry) SourceFileNames(id domain.UnitID) ([]string, error) {
	unit := r.Unit(id)
	if unit == nil {
		return nil, nil
	}
	return unit.Program.SourceFileNames()
}

func (r *Registry) create(roots []string, opts domain.EffectiveOptions) (*Unit, error) {
	program, err := r.compiler.CreateProgram(roots, opts)
	if err != nil {
		return nil, zerr.With(err, "roots", roots)
	}

	unit := &Unit{
		ID:      domain.UnitID(len(r.units)),
		Roots:   slices.Clone(roots),
		Options: opts,
		Program: program,
	}
	r.units = append(r.units, unit)
	return unit, nil
}

func withDeclarations(roots, declarations []string) []string {
	out := slices.Clone(roots)
	for _, file := range declarations {
		if !slices.Contains(out, file) {
			out = append(out, file)
		}
	}
	return out
}
