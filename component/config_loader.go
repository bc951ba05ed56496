package component

// ConfigLoader is the read-only configuration surface handed to each
// component at Init time. Components read their own section and never
// reach into other components for configuration.
type ConfigLoader interface {
	// Get returns the raw value for key (dot-separated, e.g. "hook.pool_size").
	Get(key string) interface{}

	// Unmarshal decodes the section at key into v (a struct pointer
	// with mapstructure tags).
	//
	// Example:
	//
	//	var cfg hook.Config
	//	if err := loader.Unmarshal("hook", &cfg); err != nil {
	//	    return err
	//	}
	Unmarshal(key string, v interface{}) error

	// GetString returns a string value.
	GetString(key string) string

	// GetInt returns an integer value.
	GetInt(key string) int

	// GetBool returns a boolean value.
	GetBool(key string) bool

	// IsSet reports whether key is present in any source.
	IsSet(key string) bool
}
