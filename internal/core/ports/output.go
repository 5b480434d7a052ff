package ports

// OutputWriter persists rendered bundles.
//
//go:generate mockgen -source=output.go -destination=mocks/mock_output.go -package=mocks
type OutputWriter interface {
	// Write stores content at path. It reports false when the file already held the same content.
	Write(path, content string) (bool, error)

	// Diff returns a unified diff between the file at path and content, empty when they match.
	Diff(path, content string) (string, error)
}
