// Package options implements the per-directory compiler configuration cache.
package options

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache memoizes the effective compiler options of each directory for one build.
//
// A custom tsconfig given as a bare file name is looked up as the nearest ancestor of every
// directory, so sibling directories may be governed by different configurations. A custom
// tsconfig given as a path applies to the whole build. Without a custom tsconfig the nearest
// tsconfig.json governs unit creation.
type Cache struct {
	compiler  ports.Compiler
	logger    ports.Logger
	resolved  domain.ResolvedOptions
	overrides domain.CompilerOptions
	explicit  string

	dirs    map[string]domain.EffectiveOptions
	configs map[string]*domain.ParsedConfig
}

// NewCache creates a Cache. Relative tsconfig paths are resolved against cwd.
func NewCache(compiler ports.Compiler, logger ports.Logger, resolved domain.ResolvedOptions, cwd string) *Cache {
	c := &Cache{
		compiler:  compiler,
		logger:    logger,
		resolved:  resolved,
		overrides: domain.DefaultCompilerOptions().Merge(resolved.CompilerOptions),
		dirs:      make(map[string]domain.EffectiveOptions),
		configs:   make(map[string]*domain.ParsedConfig),
	}
	if isConfigPath(resolved.Tsconfig) {
		c.explicit = resolved.Tsconfig
		if !filepath.IsAbs(c.explicit) {
			c.explicit = filepath.Join(cwd, c.explicit)
		}
	}
	return c
}

func isConfigPath(tsconfig string) bool {
	return tsconfig != "" && (filepath.IsAbs(tsconfig) || strings.ContainsAny(tsconfig, `/\`))
}

// Base returns the options module resolution uses when no custom tsconfig is in effect.
func (c *Cache) Base() domain.EffectiveOptions {
	return domain.EffectiveOptions{CompilerOptions: c.resolved.CompilerOptions}
}

// Validate checks that the custom tsconfig governing dir exists and parses.
// It is a no-op without a custom tsconfig.
func (c *Cache) Validate(dir string) error {
	if !c.resolved.HasCustomConfig() {
		return nil
	}
	configPath, err := c.configPath(dir)
	if err != nil {
		return err
	}
	if configPath == "" {
		return c.notFound(dir)
	}
	_, err = c.parse(configPath)
	return err
}

func (c *Cache) notFound(dir string) error {
	return zerr.With(zerr.With(domain.ErrTsconfigNotFound, "tsconfig", c.resolved.Tsconfig), "dir", dir)
}

// Lookup returns the effective options for dir, computing and caching them on first use.
// A custom tsconfig that governs no ancestor of dir is an error.
func (c *Cache) Lookup(dir string) (domain.EffectiveOptions, error) {
	dir = filepath.Clean(dir)
	if eff, ok := c.dirs[dir]; ok {
		return eff, nil
	}

	eff := domain.EffectiveOptions{CompilerOptions: c.overrides}

	configPath, err := c.configPath(dir)
	if err != nil {
		return domain.EffectiveOptions{}, err
	}
	if configPath == "" && c.resolved.HasCustomConfig() {
		return domain.EffectiveOptions{}, c.notFound(dir)
	}

	if configPath != "" {
		parsed, err := c.parse(configPath)
		switch {
		case err != nil && c.resolved.HasCustomConfig():
			return domain.EffectiveOptions{}, err
		case err != nil:
			c.logger.Warn(fmt.Sprintf("ignoring %s: %v", configPath, err))
		default:
			eff.ConfigPath = configPath
			eff.DeclarationFiles = declarationFiles(parsed.FileNames)
		}
	}

	c.dirs[dir] = eff
	return eff, nil
}

func (c *Cache) configPath(dir string) (string, error) {
	if c.explicit != "" {
		exists, err := c.compiler.FileExists(c.explicit)
		if err != nil || !exists {
			return "", err
		}
		return c.explicit, nil
	}

	name := c.resolved.Tsconfig
	if name == "" {
		name = domain.DefaultTsconfigName
	}

	current := dir
	for {
		candidate := filepath.Join(current, name)
		exists, err := c.compiler.FileExists(candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func (c *Cache) parse(configPath string) (*domain.ParsedConfig, error) {
	if parsed, ok := c.configs[configPath]; ok {
		return parsed, nil
	}
	parsed, err := c.compiler.ParseConfig(configPath)
	if err != nil {
		return nil, zerr.With(err, "tsconfig", configPath)
	}
	c.configs[configPath] = parsed
	return parsed, nil
}

func declarationFiles(fileNames []string) []string {
	var files []string
	for _, name := range fileNames {
		if domain.IsDeclarationFile(name) {
			files = append(files, name)
		}
	}
	return files
}
