package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/dts/internal/app"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entries...]",
		Short: "Bundle the declarations of the given entry points",
		Long: "Bundle the declarations of the given entry points into one declaration file per entry.\n" +
			"Entries may be written as name=file. Without entries, the input of dts.yaml is used.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, _ := cmd.Flags().GetStringArray("input")
			output, _ := cmd.Flags().GetString("output")
			tsconfig, _ := cmd.Flags().GetString("tsconfig")
			rawOptions, _ := cmd.Flags().GetStringArray("compiler-option")
			watch, _ := cmd.Flags().GetBool("watch")
			check, _ := cmd.Flags().GetBool("check")
			verbose, _ := cmd.Flags().GetBool("verbose")
			logFormat, _ := cmd.Flags().GetString("log-format")

			compilerOptions, err := parseCompilerOptions(rawOptions)
			if err != nil {
				return err
			}

			opts := app.BuildOptions{
				Inputs:          append(args, inputs...),
				Output:          output,
				Tsconfig:        tsconfig,
				CompilerOptions: compilerOptions,
				Watch:           watch,
				Check:           check,
				Verbose:         verbose,
				LogFormat:       logFormat,
			}
			if cmd.Flags().Changed("respect-external") {
				respect, _ := cmd.Flags().GetBool("respect-external")
				opts.RespectExternal = &respect
			}

			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringArrayP("input", "i", nil, "Entry point, optionally as name=file (repeatable)")
	cmd.Flags().StringP("output", "o", "", "Output directory (default \"dist\")")
	cmd.Flags().StringP("tsconfig", "p", "", "Custom tsconfig: a file name looked up per directory, or a path")
	cmd.Flags().Bool("respect-external", false, "Bundle the declarations of dependency packages too")
	cmd.Flags().StringArray("compiler-option", nil, "Compiler option as key=value, e.g. strict=true (repeatable)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when a dependency of the bundle changes")
	cmd.Flags().Bool("check", false, "Fail instead of writing when an output is out of date")
	cmd.MarkFlagsMutuallyExclusive("watch", "check")
	return cmd
}

// parseCompilerOptions reads key=value pairs. Values are YAML scalars or flow collections,
// so strict=true is a boolean and lib=[es2020,dom] a list.
func parseCompilerOptions(pairs []string) (domain.CompilerOptions, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	opts := make(domain.CompilerOptions, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, zerr.With(zerr.New("compiler option must be written as key=value"), "option", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid compiler option value"), "option", pair)
		}
		opts[key] = value
	}
	return opts, nil
}
