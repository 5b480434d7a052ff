// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat represents the format log records are written in.
type LogFormat int

const (
	// FormatAuto automatically detects the appropriate format.
	FormatAuto LogFormat = iota
	// FormatPretty forces colored human-readable logs.
	FormatPretty
	// FormatJSON forces one JSON object per log record.
	FormatJSON
)

// DetectEnvironment returns the recommended log format based on the environment.
// Logs are written as JSON when stderr is not a terminal and a CI environment variable is set.
func DetectEnvironment() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY && isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveFormat applies the user's --log-format flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveFormat(autoDetected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}
