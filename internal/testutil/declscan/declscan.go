// Package declscan reads the import and export structure of declaration text in tests.
//
// It understands one statement per line, the layout the compiler emits, and skips block
// comments. Builds ask the compiler instead.
package declscan

import (
	"regexp"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
)

var (
	directive     = regexp.MustCompile(`^/// <reference (path|types|lib)="([^"]+)"\s*/>`)
	importFrom    = regexp.MustCompile(`^import (?:type )?(.+?) from ["']([^"']+)["'];?`)
	importBare    = regexp.MustCompile(`^import ["']([^"']+)["'];?`)
	requireImport = regexp.MustCompile(`^(export )?import ([\w$]+) = require\(["']([^"']+)["']\);?`)
	exportFrom    = regexp.MustCompile(`^export (?:type )?(\*(?: as [\w$]+)?|\{[^}]*\}) from ["']([^"']+)["'];?`)
	exportList    = regexp.MustCompile(`^export (?:type )?\{([^}]*)\};?`)
	exportDefault = regexp.MustCompile(`^export default ([\w$]+);?$`)
	declaration   = regexp.MustCompile(
		`^(export )?(default )?(declare )?(?:abstract )?` +
			`(function|class|interface|type|enum|namespace|const|let|var)\b ?([\w$]*)`,
	)
	ambient    = regexp.MustCompile(`^(?:declare )?(?:global|module ["'])`)
	importType = regexp.MustCompile(`import\(["']([^"']+)["']\)`)
)

// Scanner implements ports.ModuleScanner with Scan.
type Scanner struct{}

var _ ports.ModuleScanner = Scanner{}

// ScanModule implements ports.ModuleScanner.
func (Scanner) ScanModule(_, text string) (*domain.ModuleSyntax, error) {
	return Scan(text), nil
}

// Scan returns the structure of text.
func Scan(text string) *domain.ModuleSyntax {
	s := &domain.ModuleSyntax{}
	offset := 0
	comment := false
	hoistStart := -1

	for _, raw := range strings.SplitAfter(text, "\n") {
		start := offset
		offset += len(raw)
		line := strings.TrimRight(raw, " \t\n")

		switch {
		case hoistStart >= 0:
			if line == "}" {
				s.Hoisted = append(s.Hoisted, domain.Span{Start: hoistStart, End: start + len(line)})
				hoistStart = -1
			}
			continue
		case comment:
			comment = !strings.Contains(line, "*/")
			continue
		case strings.HasPrefix(strings.TrimSpace(line), "/*"):
			comment = !strings.Contains(line, "*/")
			continue
		}

		for _, m := range importType.FindAllStringSubmatchIndex(line, -1) {
			s.References = append(s.References, domain.ModuleReference{
				Kind:      domain.ReferenceImportType,
				Specifier: line[m[2]:m[3]],
				Span:      domain.Span{Start: start + m[0], End: start + m[1]},
			})
		}
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '}' {
			continue
		}
		stmt := domain.Span{Start: start, End: start + len(line)}
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ") {
			s.IsModule = true
		}

		if m := directive.FindStringSubmatch(line); m != nil {
			ref := domain.ModuleReference{Kind: domain.ReferencePath, Specifier: m[2], Span: domain.Span{Start: start, End: offset}}
			if m[1] != "path" {
				ref.Kind = domain.ReferenceDirective
				ref.Specifier = line
			}
			s.References = append(s.References, ref)
			continue
		}
		if m := requireImport.FindStringSubmatch(line); m != nil {
			s.References = append(s.References, domain.ModuleReference{
				Kind:      domain.ReferenceRequire,
				Specifier: m[3],
				Span:      stmt,
				Bindings:  []domain.Binding{{Name: m[2], Property: "*"}},
				Exported:  m[1] != "",
			})
			continue
		}
		if m := importFrom.FindStringSubmatch(line); m != nil {
			s.References = append(s.References, domain.ModuleReference{
				Kind:      domain.ReferenceImport,
				Specifier: m[2],
				Span:      stmt,
				Bindings:  importClause(m[1]),
			})
			continue
		}
		if m := importBare.FindStringSubmatch(line); m != nil {
			s.References = append(s.References, domain.ModuleReference{Kind: domain.ReferenceImport, Specifier: m[1], Span: stmt})
			continue
		}
		if m := exportFrom.FindStringSubmatch(line); m != nil {
			ref := domain.ModuleReference{Kind: domain.ReferenceExport, Specifier: m[2], Span: stmt}
			switch {
			case m[1] == "*":
				ref.Star = true
			case strings.HasPrefix(m[1], "* as "):
				ref.Bindings = []domain.Binding{{Name: strings.TrimPrefix(m[1], "* as "), Property: "*"}}
			default:
				ref.Bindings = list(strings.Trim(m[1], "{}"))
			}
			s.References = append(s.References, ref)
			continue
		}
		if m := exportList.FindStringSubmatch(line); m != nil {
			s.LocalExports = append(s.LocalExports, domain.LocalExport{Span: stmt, Bindings: list(m[1])})
			continue
		}
		if m := exportDefault.FindStringSubmatch(line); m != nil {
			s.Default = &domain.DefaultExport{Span: stmt, Name: m[1], Statement: true}
			continue
		}
		if ambient.MatchString(line) {
			if strings.HasSuffix(line, "}") {
				s.Hoisted = append(s.Hoisted, stmt)
			} else {
				hoistStart = start
			}
			continue
		}
		if m := declaration.FindStringSubmatchIndex(line); m != nil {
			if m[6] >= 0 {
				s.Declare = append(s.Declare, domain.Span{Start: start + m[6], End: start + m[7]})
			}
			name := line[m[10]:m[11]]
			if m[4] >= 0 {
				d := &domain.DefaultExport{Span: domain.Span{Start: start + m[4], End: start + m[5]}, Name: name}
				if name == "" {
					d.Insert = start + m[9]
				}
				s.Default = d
				continue
			}
			s.Declarations = append(s.Declarations, domain.Declaration{
				Names:    []string{name},
				Start:    start,
				Exported: m[2] >= 0,
			})
		}
	}
	return s
}

func importClause(clause string) []domain.Binding {
	var bindings []domain.Binding
	if name, rest, ok := strings.Cut(clause, ","); ok && !strings.HasPrefix(clause, "{") {
		bindings = append(bindings, domain.Binding{Name: strings.TrimSpace(name), Property: "default"})
		clause = strings.TrimSpace(rest)
	}
	switch {
	case strings.HasPrefix(clause, "* as "):
		bindings = append(bindings, domain.Binding{Name: strings.TrimPrefix(clause, "* as "), Property: "*"})
	case strings.HasPrefix(clause, "{"):
		bindings = append(bindings, list(strings.Trim(clause, "{}"))...)
	default:
		bindings = append(bindings, domain.Binding{Name: clause, Property: "default"})
	}
	return bindings
}

func list(elements string) []domain.Binding {
	var bindings []domain.Binding
	for _, el := range strings.Split(elements, ",") {
		el = strings.TrimPrefix(strings.TrimSpace(el), "type ")
		if el == "" {
			continue
		}
		b := domain.Binding{Name: el}
		if property, name, ok := strings.Cut(el, " as "); ok {
			b = domain.Binding{Name: name}
			if property != name {
				b.Property = property
			}
		}
		bindings = append(bindings, b)
	}
	return bindings
}
