package domain

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "dts.yaml"

	// DefaultTsconfigName is the compiler configuration looked up when no custom one is configured.
	DefaultTsconfigName = "tsconfig.json"

	// DefaultOutputDir is the output directory used when none is configured.
	DefaultOutputDir = "dist"

	// DefaultEntryFileNames is the output file name pattern for entry chunks.
	DefaultEntryFileNames = "[name]" + DeclarationExtension

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
