// Package config provides the loader for dts.yaml project configuration files.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only dts.yaml schema version.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     ports.FileSystem
}

// NewLoader creates a new Loader with the given logger reading through fsys.
func NewLoader(logger ports.Logger, fsys ports.FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load finds the nearest dts.yaml at or above cwd and returns its configuration.
// It returns nil, nil when there is none.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, ok := l.findConfiguration(cwd)
	if !ok {
		return nil, nil
	}

	var dtsfile Dtsfile
	if err := l.readAndUnmarshalYAML(configPath, &dtsfile); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	if dtsfile.Version != "" && dtsfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown version %q in %s, assuming %q", dtsfile.Version, configPath, SupportedVersion))
	}

	root := resolveRoot(configPath, dtsfile.Root)
	return &domain.Config{
		Root:            root,
		Input:           dtsfile.Input.toDomain(),
		Output:          resolvePath(root, dtsfile.Output),
		Tsconfig:        resolveTsconfig(filepath.Dir(configPath), dtsfile.Tsconfig),
		RespectExternal: dtsfile.RespectExternal,
		CompilerOptions: domain.CompilerOptions(dtsfile.CompilerOptions),
	}, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Dtsfile) error {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return resolvePath(configDir, configuredRoot)
}

func resolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// resolveTsconfig anchors a tsconfig path at the configuration file. A bare file name
// stays bare so that it is looked up per directory.
func resolveTsconfig(configDir, tsconfig string) string {
	if tsconfig == "" || !strings.ContainsAny(tsconfig, `/\`) {
		return tsconfig
	}
	return resolvePath(configDir, tsconfig)
}
