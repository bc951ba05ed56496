// Package config provides a multi-source configuration loader.
// Sources are merged by priority and exposed through the
// component.ConfigLoader interface.
package config

// ConfigSource is one configuration data source (file, environment, ...).
type ConfigSource interface {
	// Name identifies the source in logs.
	Name() string

	// Priority orders merging; higher values override lower ones.
	// Suggested values: defaults 1, base file 10, env-specific file 20,
	// environment variables 50.
	Priority() int

	// Load returns the source's data as a flat map with dot-separated
	// keys, e.g. "hook.pool_size".
	Load() (map[string]interface{}, error)
}
