package ports

import "go.trai.ch/dts/internal/core/domain"

// Bundler is the downstream merge stage that flattens per-module declarations into bundles.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Options receives the build options after the orchestrator normalized them.
	Options(opts domain.BuildOptions) (domain.BuildOptions, error)

	// Transform receives the declaration text of one module keyed by its declaration file name.
	// The boolean is false when the stage leaves the module unchanged.
	Transform(code, fileName string) (string, bool, error)

	// OutputOptions adjusts the output options before chunks are rendered.
	OutputOptions(opts domain.OutputOptions) domain.OutputOptions

	// RenderChunk produces the final text of an entry chunk.
	RenderChunk(code string, chunk domain.Chunk) (string, error)
}
