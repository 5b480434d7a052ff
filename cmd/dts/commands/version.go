package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/dts/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short, _ := cmd.Flags().GetBool("short"); short {
				_, _ = fmt.Fprintln(out, build.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "dts version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
		},
	}
	cmd.Flags().Bool("short", false, "Print the version number only")
	return cmd
}
