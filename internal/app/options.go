package app

import (
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
)

// BuildOptions are the command line settings of a build. Non-zero values override dts.yaml.
type BuildOptions struct {
	// Inputs are entry files relative to the working directory, optionally written as name=file.
	Inputs          []string
	Output          string
	Tsconfig        string
	RespectExternal *bool
	CompilerOptions domain.CompilerOptions

	Watch     bool
	Check     bool
	Verbose   bool
	LogFormat string
}

// mergeConfig applies opts on top of cfg, which may be nil when no dts.yaml exists.
// Paths given on the command line are relative to cwd.
func mergeConfig(cfg *domain.Config, opts BuildOptions, cwd string) *domain.Config {
	merged := domain.Config{Root: cwd}
	if cfg != nil {
		merged = *cfg
		merged.CompilerOptions = cfg.CompilerOptions.Clone()
	}

	if len(opts.Inputs) > 0 {
		merged.Input = parseInputs(opts.Inputs, merged.Root, cwd)
	}
	if opts.Output != "" {
		merged.Output = absolute(cwd, opts.Output)
	}
	if merged.Output == "" {
		merged.Output = filepath.Join(merged.Root, domain.DefaultOutputDir)
	}
	if opts.Tsconfig != "" {
		merged.Tsconfig = opts.Tsconfig
		if strings.ContainsRune(opts.Tsconfig, filepath.Separator) || strings.ContainsRune(opts.Tsconfig, '/') {
			merged.Tsconfig = absolute(cwd, opts.Tsconfig)
		}
	}
	if opts.RespectExternal != nil {
		merged.RespectExternal = *opts.RespectExternal
	}
	if len(opts.CompilerOptions) > 0 {
		merged.CompilerOptions = merged.CompilerOptions.Merge(opts.CompilerOptions)
	}

	return &merged
}

// parseInputs turns command line entries into an Input. Entries are made relative to root
// when they lie inside it, so that they are named the same way as entries of dts.yaml.
func parseInputs(args []string, root, cwd string) domain.Input {
	var in domain.Input
	for _, arg := range args {
		name, file, named := strings.Cut(arg, "=")
		if !named {
			file = arg
		}
		file = relativeTo(root, absolute(cwd, file))

		if named {
			if in.Named == nil {
				in.Named = make(map[string]string)
			}
			in.Named[name] = file
			continue
		}
		in.Files = append(in.Files, file)
	}

	// Unnamed entries are named after their files.
	if in.Named != nil {
		for _, file := range in.Files {
			in.Named[domain.TrimScriptExtension(file)] = file
		}
		in.Files = nil
	}
	return in
}

func absolute(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
