package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/dts/internal/adapters/detector"
)

func TestDetectEnvironment_NoCI(t *testing.T) {
	t.Setenv("CI", "")

	assert.Equal(t, detector.FormatPretty, detector.DetectEnvironment())
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")

	// Under go test stderr is rarely a terminal, but the result is either format.
	got := detector.DetectEnvironment()
	assert.Contains(t, []detector.LogFormat{detector.FormatJSON, detector.FormatPretty}, got)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.LogFormat
		userFlag     string
		expected     detector.LogFormat
	}{
		{
			name:         "auto respects auto-detection",
			autoDetected: detector.FormatJSON,
			userFlag:     "auto",
			expected:     detector.FormatJSON,
		},
		{
			name:         "empty flag respects auto-detection",
			autoDetected: detector.FormatPretty,
			userFlag:     "",
			expected:     detector.FormatPretty,
		},
		{
			name:         "json overrides auto-detection",
			autoDetected: detector.FormatPretty,
			userFlag:     "json",
			expected:     detector.FormatJSON,
		},
		{
			name:         "pretty overrides auto-detection",
			autoDetected: detector.FormatJSON,
			userFlag:     "pretty",
			expected:     detector.FormatPretty,
		},
		{
			name:         "unknown flag falls back to auto-detection",
			autoDetected: detector.FormatJSON,
			userFlag:     "xml",
			expected:     detector.FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveFormat(tt.autoDetected, tt.userFlag))
		})
	}
}
