package merge

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.trai.ch/dts/internal/core/domain"
)

const (
	indent = "    "
	// defaultMember is the namespace member a module's default export is kept under.
	defaultMember = "__default"
)

// placement is where the declarations of a module end up in the bundle.
type placement int

const (
	// topLevel keeps declarations in place: the entry module, and scripts of a script bundle.
	topLevel placement = iota
	// namespaced wraps a module in a declare namespace block.
	namespaced
	// global wraps a script in the declare global block of a module bundle.
	global
)

type edit struct {
	span domain.Span
	text string
}

type exportSet struct {
	names         []string
	externalStars []string
}

// renderer renders one chunk.
type renderer struct {
	chunk   domain.Chunk
	entry   *domain.ChunkModule
	modules map[string]*domain.ChunkModule

	used       map[string]bool
	namespaces map[string]string
	exportSets map[string]*exportSet

	externals     map[string]string
	externalOrder []string
	sideEffects   []string
	directives    []string
	hoisted       []string
}

func newRenderer(chunk domain.Chunk) *renderer {
	r := &renderer{
		chunk:      chunk,
		entry:      &chunk.Modules[len(chunk.Modules)-1],
		modules:    make(map[string]*domain.ChunkModule, len(chunk.Modules)),
		used:       make(map[string]bool),
		namespaces: make(map[string]string),
		exportSets: make(map[string]*exportSet),
		externals:  make(map[string]string),
	}
	for i := range chunk.Modules {
		mod := &chunk.Modules[i]
		r.modules[mod.ID] = mod
		if mod.ID == chunk.EntryModule {
			r.entry = mod
		}
	}
	for i := range chunk.Modules {
		mod := &chunk.Modules[i]
		if mod != r.entry && syntaxOf(mod).IsModule {
			r.namespaces[mod.ID] = r.identifier(ModuleName(chunk.Root, mod.ID))
		}
	}
	return r
}

func (r *renderer) render() string {
	bundleIsModule := syntaxOf(r.entry).IsModule

	var blocks []string
	for i := range r.chunk.Modules {
		mod := &r.chunk.Modules[i]
		switch {
		case mod == r.entry:
			continue
		case r.namespaces[mod.ID] != "":
			blocks = append(blocks, wrap("declare namespace "+r.namespaces[mod.ID], r.body(mod, namespaced)))
		case bundleIsModule:
			blocks = append(blocks, wrap("declare global", r.body(mod, global)))
		default:
			blocks = append(blocks, r.body(mod, topLevel))
		}
	}
	entry := r.body(r.entry, topLevel)

	var b strings.Builder
	b.WriteString(Header)
	for _, d := range r.directives {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	for _, spec := range r.externalOrder {
		fmt.Fprintf(&b, "import * as %s from %s;\n", r.externals[spec], strconv.Quote(spec))
	}
	for _, spec := range r.sideEffects {
		fmt.Fprintf(&b, "import %s;\n", strconv.Quote(spec))
	}
	for _, block := range slices.Concat(r.hoisted, blocks, []string{entry}) {
		if block == "" {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(block)
	}
	return b.String()
}

// body rewrites the declarations of mod for its placement.
func (r *renderer) body(mod *domain.ChunkModule, place placement) string {
	syntax := syntaxOf(mod)
	code := mod.Code

	own := make(map[string]bool)
	for _, name := range explicitExports(syntax) {
		own[name] = true
	}
	// Local names exported under their own name need an export modifier inside a namespace.
	sameName := make(map[string]bool)
	for _, le := range syntax.LocalExports {
		for _, b := range le.Bindings {
			if b.Name == b.Member() {
				sameName[b.Name] = true
			}
		}
	}
	bound := make(map[string]bool)
	for _, ref := range syntax.References {
		if ref.Kind == domain.ReferenceImport || ref.Kind == domain.ReferenceRequire {
			for _, b := range ref.Bindings {
				bound[b.Name] = true
			}
		}
	}
	stars, starred := r.starExports(mod, own)

	var edits []edit
	for i, ref := range syntax.References {
		switch ref.Kind {
		case domain.ReferenceDirective:
			r.directive(ref.Specifier)
			edits = append(edits, edit{span: ref.Span})
		case domain.ReferencePath:
			edits = append(edits, edit{span: ref.Span})
		case domain.ReferenceImportType:
			if id, ok := mod.Imports[ref.Specifier]; ok && r.namespaces[id] != "" {
				edits = append(edits, edit{span: ref.Span, text: r.namespaces[id]})
			}
		case domain.ReferenceImport, domain.ReferenceRequire:
			exported := func(name string) bool {
				return ref.Exported || starred[name] || (place != topLevel && sameName[name])
			}
			if lines, keep := r.importLines(mod, ref, place, exported); !keep {
				edits = append(edits, replace(code, ref.Span, lines))
			}
		case domain.ReferenceExport:
			if ref.Star {
				if _, internal := mod.Imports[ref.Specifier]; internal || place != topLevel {
					edits = append(edits, replace(code, ref.Span, r.starLines(stars[i], bound, place)))
				}
				continue
			}
			if lines, keep := r.exportLines(mod, ref, place); !keep {
				edits = append(edits, replace(code, ref.Span, lines))
			}
		}
	}

	var trailer []string
	if place != topLevel {
		var more []edit
		more, trailer = declarationEdits(code, syntax, sameName)
		edits = r.hoist(code, syntax.Hoisted, append(edits, more...))
	}

	text := strings.TrimRight(applyEdits(code, edits), "\n")
	if len(trailer) > 0 {
		text += "\n" + strings.Join(trailer, "\n")
	}
	text = strings.Trim(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}

// importLines rewrites an import of mod into import aliases. keep reports that the statement
// stays as written.
func (r *renderer) importLines(
	mod *domain.ChunkModule,
	ref domain.ModuleReference,
	place placement,
	exported func(name string) bool,
) ([]string, bool) {
	id, internal := mod.Imports[ref.Specifier]
	if !internal && place == topLevel {
		return nil, true
	}
	if !internal && len(ref.Bindings) == 0 {
		r.sideEffect(ref.Specifier)
		return nil, false
	}

	var lines []string
	for _, b := range ref.Bindings {
		target := r.target(ref.Specifier, id, internal, b.Member())
		if target == "" || target == b.Name {
			continue
		}
		prefix := ""
		if exported(b.Name) {
			prefix = "export "
		}
		lines = append(lines, prefix+"import "+b.Name+" = "+target+";")
	}
	return lines, false
}

// exportLines rewrites a named or namespace re-export of mod.
func (r *renderer) exportLines(mod *domain.ChunkModule, ref domain.ModuleReference, place placement) ([]string, bool) {
	id, internal := mod.Imports[ref.Specifier]
	if !internal && place == topLevel {
		return nil, true
	}

	var lines []string
	for _, b := range ref.Bindings {
		target := r.target(ref.Specifier, id, internal, b.Member())
		if target == "" || target == b.Name {
			continue
		}
		switch {
		case b.Name != "default":
			lines = append(lines, "export import "+b.Name+" = "+target+";")
		case place == topLevel:
			lines = append(lines, "export default "+target+";")
		default:
			lines = append(lines, "export import "+defaultMember+" = "+target+";")
		}
	}
	return lines, false
}

type starExport struct {
	names         []string
	targets       []string
	externalStars []string
}

// starExports expands the export * declarations of mod, keyed by reference index. Names the
// module exports itself win, and a name is exported once.
func (r *renderer) starExports(mod *domain.ChunkModule, own map[string]bool) (map[int]*starExport, map[string]bool) {
	stars := make(map[int]*starExport)
	starred := make(map[string]bool)
	for i, ref := range syntaxOf(mod).References {
		if ref.Kind != domain.ReferenceExport || !ref.Star {
			continue
		}
		star := &starExport{}
		stars[i] = star
		id, internal := mod.Imports[ref.Specifier]
		if !internal {
			continue
		}
		set := r.exports(id)
		for _, name := range set.names {
			if own[name] || starred[name] {
				continue
			}
			starred[name] = true
			star.names = append(star.names, name)
			star.targets = append(star.targets, r.member(id, name))
		}
		star.externalStars = set.externalStars
	}
	return stars, starred
}

// starLines declares the names of one export * declaration. Names bound by a local import are
// exported by that import instead.
func (r *renderer) starLines(star *starExport, bound map[string]bool, place placement) []string {
	var lines []string
	for i, name := range star.names {
		if bound[name] || star.targets[i] == "" || star.targets[i] == name {
			continue
		}
		lines = append(lines, "export import "+name+" = "+star.targets[i]+";")
	}
	if place == topLevel {
		for _, spec := range star.externalStars {
			line := "export * from " + strconv.Quote(spec) + ";"
			if !slices.Contains(lines, line) {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// exports lists the names module id exports, default excluded, following export * declarations.
func (r *renderer) exports(id string) *exportSet {
	if set, ok := r.exportSets[id]; ok {
		return set
	}
	set := &exportSet{}
	r.exportSets[id] = set

	mod := r.modules[id]
	if mod == nil {
		return set
	}
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			set.names = append(set.names, name)
		}
	}

	syntax := syntaxOf(mod)
	for _, name := range explicitExports(syntax) {
		add(name)
	}
	for _, ref := range syntax.References {
		if ref.Kind != domain.ReferenceExport || !ref.Star {
			continue
		}
		target, internal := mod.Imports[ref.Specifier]
		if !internal {
			set.externalStars = append(set.externalStars, ref.Specifier)
			continue
		}
		inner := r.exports(target)
		for _, name := range inner.names {
			add(name)
		}
		set.externalStars = append(set.externalStars, inner.externalStars...)
	}
	return set
}

// target is the entity a binding refers to: a namespace member for modules of the chunk, a
// member of the hoisted namespace import for externals.
func (r *renderer) target(specifier, id string, internal bool, name string) string {
	if internal {
		return r.member(id, name)
	}
	ns := r.external(specifier)
	if name == "*" {
		return ns
	}
	return ns + "." + name
}

// member returns the entity name refers to in module id, empty when there is none.
func (r *renderer) member(id, name string) string {
	if id == r.entry.ID {
		// The entry module is not wrapped, its declarations are in scope by name.
		switch name {
		case "*":
			return ""
		case "default":
			if d := syntaxOf(r.entry).Default; d != nil {
				return d.Name
			}
			return ""
		}
		return name
	}

	ns := r.namespaces[id]
	switch {
	case ns == "":
		return ""
	case name == "*":
		return ns
	case name == "default":
		return ns + "." + defaultMember
	}
	return ns + "." + name
}

// hoist moves global augmentations and ambient module declarations out of a wrapped module.
// Edits inside them are applied to the hoisted text.
func (r *renderer) hoist(code string, spans []domain.Span, edits []edit) []edit {
	for _, span := range spans {
		var inner []edit
		edits = slices.DeleteFunc(edits, func(e edit) bool {
			if e.span.Start < span.Start || e.span.End > span.End {
				return false
			}
			inner = append(inner, edit{
				span: domain.Span{Start: e.span.Start - span.Start, End: e.span.End - span.Start},
				text: e.text,
			})
			return true
		})
		r.hoisted = append(r.hoisted, applyEdits(code[span.Start:span.End], inner)+"\n")
		edits = append(edits, replace(code, span, nil))
	}
	return edits
}

func (r *renderer) external(specifier string) string {
	if ns, ok := r.externals[specifier]; ok {
		return ns
	}
	ns := r.identifier("ext/" + specifier)
	r.externals[specifier] = ns
	r.externalOrder = append(r.externalOrder, specifier)
	return ns
}

func (r *renderer) sideEffect(specifier string) {
	if !slices.Contains(r.sideEffects, specifier) {
		r.sideEffects = append(r.sideEffects, specifier)
	}
}

func (r *renderer) directive(text string) {
	if !slices.Contains(r.directives, text) {
		r.directives = append(r.directives, text)
	}
}

// identifier derives an unused identifier from name.
func (r *renderer) identifier(name string) string {
	var b strings.Builder
	b.WriteString("__")
	for _, c := range name {
		if c == '_' || c == '$' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	base := b.String()
	id := base
	for n := 2; r.used[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	r.used[id] = true
	return id
}

// declarationEdits makes the declarations of a module valid inside a namespace: declare
// modifiers go, export lists and default exports become export modifiers and aliases.
func declarationEdits(code string, s *domain.ModuleSyntax, sameName map[string]bool) ([]edit, []string) {
	var edits []edit
	var trailer []string

	for _, span := range s.Declare {
		edits = append(edits, edit{span: span})
	}
	for _, d := range s.Declarations {
		if !d.Exported && slices.ContainsFunc(d.Names, func(n string) bool { return sameName[n] }) {
			edits = append(edits, edit{span: domain.Span{Start: d.Start, End: d.Start}, text: "export "})
		}
	}
	for _, le := range s.LocalExports {
		var lines []string
		for _, b := range le.Bindings {
			switch local := b.Member(); {
			case b.Name == "default":
				lines = append(lines, "export import "+defaultMember+" = "+local+";")
			case b.Name != local:
				lines = append(lines, "export import "+b.Name+" = "+local+";")
			}
		}
		edits = append(edits, replace(code, le.Span, lines))
	}

	if d := s.Default; d != nil {
		switch {
		case d.Statement && d.Name != "":
			edits = append(edits, edit{span: d.Span, text: "export import " + defaultMember + " = " + d.Name + ";"})
		case d.Statement:
			edits = append(edits, replace(code, d.Span, nil))
		case d.Name == "":
			edits = append(edits,
				edit{span: d.Span},
				edit{span: domain.Span{Start: d.Insert, End: d.Insert}, text: " " + defaultMember},
			)
		default:
			edits = append(edits, edit{span: d.Span})
			trailer = append(trailer, "export import "+defaultMember+" = "+d.Name+";")
		}
	}
	return edits, trailer
}

// explicitExports lists the names a module exports without export *, default excluded.
func explicitExports(s *domain.ModuleSyntax) []string {
	var names []string
	for _, d := range s.Declarations {
		if d.Exported {
			names = append(names, d.Names...)
		}
	}
	for _, le := range s.LocalExports {
		for _, b := range le.Bindings {
			names = append(names, b.Name)
		}
	}
	for _, ref := range s.References {
		if (ref.Kind == domain.ReferenceExport && !ref.Star) || (ref.Kind == domain.ReferenceRequire && ref.Exported) {
			for _, b := range ref.Bindings {
				names = append(names, b.Name)
			}
		}
	}
	return slices.DeleteFunc(names, func(n string) bool { return n == "default" })
}

// replace swaps a statement for lines. A removed statement takes its line break with it.
func replace(code string, span domain.Span, lines []string) edit {
	if len(lines) > 0 {
		return edit{span: span, text: strings.Join(lines, "\n")}
	}
	if span.End < len(code) && code[span.End] == '\n' && (span.Start == 0 || code[span.Start-1] == '\n') {
		span.End++
	}
	return edit{span: span}
}

// applyEdits replaces every span of code. An insertion goes before a replacement starting at
// the same offset; an edit overlapping an earlier one is dropped.
func applyEdits(code string, edits []edit) string {
	slices.SortStableFunc(edits, func(a, b edit) int {
		if c := cmp.Compare(a.span.Start, b.span.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.span.End, b.span.End)
	})

	var b strings.Builder
	last := 0
	for _, e := range edits {
		if e.span.Start < last || e.span.End > len(code) {
			continue
		}
		b.WriteString(code[last:e.span.Start])
		b.WriteString(e.text)
		last = e.span.End
	}
	b.WriteString(code[last:])
	return b.String()
}

func wrap(head, body string) string {
	if body == "" {
		return head + " {}\n"
	}
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(" {\n")
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

func syntaxOf(mod *domain.ChunkModule) *domain.ModuleSyntax {
	if mod.Syntax == nil {
		return &domain.ModuleSyntax{IsModule: true}
	}
	return mod.Syntax
}
