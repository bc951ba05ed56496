package config

import (
	"os"
	"strings"
)

// EnvSource loads configuration from environment variables.
// With explicit bindings only the bound keys are read; otherwise all
// variables carrying the prefix are scanned, with "__" separating
// nesting levels so keys may contain single underscores
// (MODRING_HOOK__POOL_SIZE -> "hook.pool_size").
type EnvSource struct {
	prefix   string
	priority int
	bindings map[string]string // config key -> env var name
}

// NewEnvSource creates an environment source.
func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		bindings: make(map[string]string),
	}
}

// AddBinding maps a config key to an env var name, e.g.
// AddBinding("hook.pool_size", "HOOK_POOL_SIZE").
func (s *EnvSource) AddBinding(key, envKey string) {
	s.bindings[key] = envKey
}

// Name returns the source name.
func (s *EnvSource) Name() string {
	return "env:" + s.prefix
}

// Priority returns the merge priority.
func (s *EnvSource) Priority() int {
	return s.priority
}

// Load reads the bound or prefixed environment variables.
func (s *EnvSource) Load() (map[string]interface{}, error) {
	result := make(map[string]interface{})

	if len(s.bindings) > 0 {
		for key, envKey := range s.bindings {
			fullEnvKey := envKey
			if s.prefix != "" && !strings.HasPrefix(envKey, s.prefix+"_") {
				fullEnvKey = s.prefix + "_" + envKey
			}
			if value := os.Getenv(fullEnvKey); value != "" {
				result[key] = value
			}
		}
		return result, nil
	}

	if s.prefix == "" {
		return result, nil
	}

	prefix := s.prefix + "_"
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		key = strings.ReplaceAll(key, "__", ".")
		result[key] = value
	}

	return result, nil
}
