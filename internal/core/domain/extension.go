package domain

import (
	"path"
	"regexp"
	"strings"
)

// DeclarationExtension is the extension every generated declaration is keyed by.
const DeclarationExtension = ".d.ts"

var (
	scriptExtension      = regexp.MustCompile(`\.([cm]ts|[tj]sx?)$`)
	declarationExtension = regexp.MustCompile(`\.d\.(c|m)?tsx?$`)
	entryNameExtension   = regexp.MustCompile(`((\.d)?\.(c|m)?(t|j)sx?)$`)
)

// IsDeclarationFile reports whether name already carries a declaration extension.
func IsDeclarationFile(name string) bool {
	return declarationExtension.MatchString(name)
}

// IsScriptFile reports whether name carries a script extension the compiler understands.
// Declaration files are script files too.
func IsScriptFile(name string) bool {
	return scriptExtension.MatchString(name)
}

// DeclarationName rewrites a script file name into its declaration form.
// Names that are already declarations or not scripts are returned unchanged.
func DeclarationName(name string) string {
	if IsDeclarationFile(name) || !IsScriptFile(name) {
		return name
	}
	return scriptExtension.ReplaceAllString(name, DeclarationExtension)
}

// TrimScriptExtension strips a script or declaration extension from name.
func TrimScriptExtension(name string) string {
	return entryNameExtension.ReplaceAllString(name, "")
}

// NormalizePath converts a host path into the forward-slash form the compiler indexes files by.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// IsRelativeSpecifier reports whether an import specifier is relative to its importer.
func IsRelativeSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, ".")
}
