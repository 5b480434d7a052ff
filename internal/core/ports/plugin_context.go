package ports

// PluginContext exposes the build driver's services to a running hook.
//
//go:generate mockgen -source=plugin_context.go -destination=mocks/mock_plugin_context.go -package=mocks
type PluginContext interface {
	// AddWatchFile registers path as a dependency of the current build.
	AddWatchFile(path string)

	// Warn reports a non-fatal problem with the current build.
	Warn(msg string)
}
