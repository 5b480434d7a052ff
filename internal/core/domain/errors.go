package domain

import "go.trai.ch/zerr"

var (
	// ErrCompileFailed is returned when the compiler skipped declaration emission because of errors.
	ErrCompileFailed = zerr.New("failed to compile, check the logs above")

	// ErrBuildFailed is returned when a build could not produce its declaration bundle.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoEntryPoints is returned when a build has no input files.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrTsconfigNotFound is returned when an explicitly configured tsconfig cannot be found.
	ErrTsconfigNotFound = zerr.New("tsconfig not found")

	// ErrTsconfigInvalid is returned when a tsconfig cannot be read or parsed by the compiler.
	ErrTsconfigInvalid = zerr.New("invalid tsconfig")

	// ErrConfigReadFailed is returned when the dts.yaml file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the dts.yaml file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidInput is returned when the input section of the configuration has an unsupported shape.
	ErrInvalidInput = zerr.New("input must be a file, a list of files or a map of names to files")

	// ErrEntryNotFound is returned when an entry point does not exist on disk.
	ErrEntryNotFound = zerr.New("entry point not found")

	// ErrCompilerStartFailed is returned when the compiler bridge process cannot be started.
	ErrCompilerStartFailed = zerr.New("failed to start compiler bridge")

	// ErrCompilerRequestFailed is returned when the compiler bridge reports a failed request.
	ErrCompilerRequestFailed = zerr.New("compiler request failed")

	// ErrCompilerProtocol is returned when the compiler bridge sends a malformed response.
	ErrCompilerProtocol = zerr.New("malformed compiler bridge response")

	// ErrCompilerClosed is returned when a request is made after the compiler bridge exited.
	ErrCompilerClosed = zerr.New("compiler bridge is not running")

	// ErrModuleReadFailed is returned when the build driver cannot read a module's source.
	ErrModuleReadFailed = zerr.New("failed to read module")

	// ErrModuleScanFailed is returned when the compiler cannot parse the declarations of a module.
	ErrModuleScanFailed = zerr.New("failed to parse module declarations")

	// ErrRenderFailed is returned when an output chunk cannot be rendered.
	ErrRenderFailed = zerr.New("failed to render chunk")

	// ErrOutputWriteFailed is returned when a bundle cannot be written to disk.
	ErrOutputWriteFailed = zerr.New("failed to write output file")

	// ErrOutputReadFailed is returned when an existing bundle cannot be read for comparison.
	ErrOutputReadFailed = zerr.New("failed to read existing output file")

	// ErrOutputStale is returned by check mode when an output differs from the generated bundle.
	ErrOutputStale = zerr.New("output is out of date")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)
