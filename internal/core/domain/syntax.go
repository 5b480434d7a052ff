package domain

// ReferenceKind classifies how a declaration file refers to another module.
type ReferenceKind string

const (
	// ReferenceImport is an import declaration, side-effect imports included.
	ReferenceImport ReferenceKind = "import"
	// ReferenceExport is an export declaration with a module specifier.
	ReferenceExport ReferenceKind = "export"
	// ReferenceRequire is an import equals declaration with a require call.
	ReferenceRequire ReferenceKind = "require"
	// ReferenceImportType is an import type such as import("./a").A.
	ReferenceImportType ReferenceKind = "importType"
	// ReferencePath is a triple-slash path reference to another file.
	ReferencePath ReferenceKind = "path"
	// ReferenceDirective is a triple-slash types or lib directive. Its specifier is the directive text.
	ReferenceDirective ReferenceKind = "directive"
)

// Span is a half-open range of byte offsets into declaration text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Binding is one name brought in by an import or sent out by an export.
type Binding struct {
	// Name is the local name of an import, or the exported name of an export.
	Name string `json:"name"`
	// Property is the member on the other side when it differs from Name: "default" for default
	// imports, "*" for namespace imports and exports.
	Property string `json:"property,omitempty"`
}

// Member returns the name the binding refers to on the other side.
func (b Binding) Member() string {
	if b.Property != "" {
		return b.Property
	}
	return b.Name
}

// ModuleReference is one place a declaration file refers to another module.
type ModuleReference struct {
	Kind      ReferenceKind `json:"kind"`
	Specifier string        `json:"specifier"`
	// Span covers the statement, the directive line, or the import(...) part of an import type.
	Span     Span      `json:"span"`
	Bindings []Binding `json:"bindings,omitempty"`
	// Star marks export * from.
	Star bool `json:"star,omitempty"`
	// Exported marks export import x = require(...).
	Exported bool `json:"exported,omitempty"`
}

// LocalExport is an export list without a module specifier. Binding names are the exported
// names, properties the local ones.
type LocalExport struct {
	Span     Span      `json:"span"`
	Bindings []Binding `json:"bindings,omitempty"`
}

// Declaration is a named top-level declaration.
type Declaration struct {
	Names []string `json:"names"`
	// Start is the offset of the first modifier or keyword.
	Start    int  `json:"start"`
	Exported bool `json:"exported,omitempty"`
}

// DefaultExport is the default export of a module.
type DefaultExport struct {
	// Span covers an export default statement, or the default keyword of a declaration and the
	// blanks after it.
	Span Span `json:"span"`
	// Name is the identifier exported as default, empty for anonymous declarations.
	Name string `json:"name,omitempty"`
	// Insert is where a name can be given to an anonymous declaration.
	Insert int `json:"insert,omitempty"`
	// Statement is set for export default <expression>.
	Statement bool `json:"statement,omitempty"`
}

// ModuleSyntax is the import and export structure of a declaration file, as parsed by the compiler.
type ModuleSyntax struct {
	// IsModule is false for global scripts.
	IsModule bool `json:"isModule"`
	// References are ordered by position.
	References   []ModuleReference `json:"references,omitempty"`
	LocalExports []LocalExport     `json:"localExports,omitempty"`
	Declarations []Declaration     `json:"declarations,omitempty"`
	Default      *DefaultExport    `json:"default,omitempty"`
	// Hoisted are global augmentations and ambient module declarations.
	Hoisted []Span `json:"hoisted,omitempty"`
	// Declare are the declare modifiers of top-level statements, trailing blanks included.
	Declare []Span `json:"declare,omitempty"`
}

// Dependencies returns the references that name another module of the graph, one per
// specifier and kind, in order of appearance.
func (s *ModuleSyntax) Dependencies() []ModuleReference {
	if s == nil {
		return nil
	}
	type key struct {
		kind      ReferenceKind
		specifier string
	}
	var deps []ModuleReference
	seen := make(map[key]struct{})
	for _, ref := range s.References {
		if ref.Kind == ReferenceDirective {
			continue
		}
		k := key{kind: ref.Kind, specifier: ref.Specifier}
		if ref.Kind != ReferencePath {
			k.kind = ""
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deps = append(deps, ref)
	}
	return deps
}
