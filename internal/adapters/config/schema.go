package config

import (
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Dtsfile represents the structure of the dts.yaml configuration file.
type Dtsfile struct {
	Version         string         `yaml:"version"`
	Root            string         `yaml:"root"`
	Input           InputDTO       `yaml:"input"`
	Output          string         `yaml:"output"`
	Tsconfig        string         `yaml:"tsconfig"`
	RespectExternal bool           `yaml:"respectExternal"`
	CompilerOptions map[string]any `yaml:"compilerOptions"`
}

// InputDTO is the input section: a single file, a list of files or a map of names to files.
type InputDTO struct {
	Files []string
	Named map[string]string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *InputDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var file string
		if err := node.Decode(&file); err != nil {
			return err
		}
		if file != "" {
			in.Files = []string{file}
		}
		return nil
	case yaml.SequenceNode:
		return node.Decode(&in.Files)
	case yaml.MappingNode:
		return node.Decode(&in.Named)
	default:
		return zerr.With(domain.ErrInvalidInput, "line", node.Line)
	}
}

func (in InputDTO) toDomain() domain.Input {
	return domain.Input{Files: in.Files, Named: in.Named}
}
