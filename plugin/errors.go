package plugin

import "github.com/modring/go-modring-framework/errcode"

// Module code 40 is reserved for the plugin module.
const moduleCode = 40

var (
	// ErrManifestInvalid is returned when a plugin manifest fails
	// validation.
	ErrManifestInvalid = errcode.Register(errcode.New(moduleCode, 1, "plugin",
		"error.plugin.manifest_invalid", "plugin manifest invalid"))

	// ErrAlreadyLoaded is returned when a plugin name is loaded twice.
	ErrAlreadyLoaded = errcode.Register(errcode.New(moduleCode, 2, "plugin",
		"error.plugin.already_loaded", "plugin already loaded"))

	// ErrNotFound is returned for unknown plugin names.
	ErrNotFound = errcode.Register(errcode.New(moduleCode, 3, "plugin",
		"error.plugin.not_found", "plugin not found"))

	// ErrAlreadyEnabled is returned when enabling an enabled plugin.
	ErrAlreadyEnabled = errcode.Register(errcode.New(moduleCode, 4, "plugin",
		"error.plugin.already_enabled", "plugin already enabled"))

	// ErrNotEnabled is returned when disabling a disabled plugin.
	ErrNotEnabled = errcode.Register(errcode.New(moduleCode, 5, "plugin",
		"error.plugin.not_enabled", "plugin not enabled"))

	// ErrEnableFailed wraps a plugin's Enable error.
	ErrEnableFailed = errcode.Register(errcode.New(moduleCode, 6, "plugin",
		"error.plugin.enable_failed", "plugin enable failed"))
)
