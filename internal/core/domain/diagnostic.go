package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DiagnosticCategory mirrors the compiler's diagnostic severities.
type DiagnosticCategory int

const (
	// CategoryWarning is a non-fatal warning.
	CategoryWarning DiagnosticCategory = iota
	// CategoryError is an error that prevents emission.
	CategoryError
	// CategorySuggestion is an editor suggestion.
	CategorySuggestion
	// CategoryMessage is an informational message.
	CategoryMessage
)

// String returns the lower-case name the compiler prints for the category.
func (c DiagnosticCategory) String() string {
	switch c {
	case CategoryWarning:
		return "warning"
	case CategoryError:
		return "error"
	case CategorySuggestion:
		return "suggestion"
	case CategoryMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Diagnostic is a single message reported by the compiler.
type Diagnostic struct {
	Category DiagnosticCategory
	Code     int
	// File is empty for global diagnostics.
	File string
	// Line and Column are 1-based; zero when File is empty.
	Line    int
	Column  int
	Message string
}

// OutputFile is a file produced by an emission or a build.
type OutputFile struct {
	Name string
	Text string
}

// EmitResult is the outcome of a declaration-only emission.
type EmitResult struct {
	Skipped     bool
	Outputs     []OutputFile
	Diagnostics []Diagnostic
}

// Errors returns the error-severity diagnostics of the emission.
func (r EmitResult) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Category == CategoryError {
			errs = append(errs, d)
		}
	}
	return errs
}

// Declaration returns the text of the single declaration output, if the emission produced one.
func (r EmitResult) Declaration() (string, bool) {
	for _, out := range r.Outputs {
		if IsDeclarationFile(out.Name) {
			return out.Text, true
		}
	}
	return "", false
}

// FormatDiagnostics renders diagnostics the way the compiler's command line does,
// with file names relative to cwd:
//
//	src/a.ts(3,5): error TS2322: Type 'string' is not assignable to type 'number'.
func FormatDiagnostics(diags []Diagnostic, cwd string) string {
	var b strings.Builder
	for _, d := range diags {
		if d.File != "" {
			name := d.File
			if rel, err := filepath.Rel(cwd, filepath.FromSlash(d.File)); err == nil && !strings.HasPrefix(rel, "..") {
				name = filepath.ToSlash(rel)
			}
			fmt.Fprintf(&b, "%s(%d,%d): ", name, d.Line, d.Column)
		}
		fmt.Fprintf(&b, "%s TS%d: %s\n", d.Category, d.Code, d.Message)
	}
	return b.String()
}
