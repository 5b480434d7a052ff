// Package output provides utilities for creating termenv.Output with consistent
// color profile handling across the CLI.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/dts/internal/ui/style"
)

// ColorProfile returns the color profile to use for terminal output.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the CLI's profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Colored renders s in the given hex color using out's profile.
func Colored(out *termenv.Output, s, hex string) string {
	return out.String(s).Foreground(termenv.RGBColor(hex)).String()
}

// ColorDiff colors the added, removed and hunk header lines of a unified diff.
func ColorDiff(out *termenv.Output, diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		var hex string
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			hex = string(style.Slate)
		case strings.HasPrefix(body, "@@"):
			hex = string(style.Blue)
		case strings.HasPrefix(body, "+"):
			hex = string(style.Green)
		case strings.HasPrefix(body, "-"):
			hex = string(style.Red)
		default:
			continue
		}
		lines[i] = Colored(out, body, hex) + line[len(body):]
	}
	return strings.Join(lines, "")
}
