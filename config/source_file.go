package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// FileSource loads a YAML/TOML/JSON configuration file through viper.
// A missing file is not an error; it yields an empty map.
type FileSource struct {
	path     string
	priority int
}

// NewFileSource creates a file source.
func NewFileSource(path string, priority int) *FileSource {
	return &FileSource{
		path:     path,
		priority: priority,
	}
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Priority returns the merge priority.
func (s *FileSource) Priority() int {
	return s.priority
}

// Load reads and flattens the file.
func (s *FileSource) Load() (map[string]interface{}, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return make(map[string]interface{}), nil
		}
		return nil, fmt.Errorf("stat config file %s: %w", s.path, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", s.path, err)
	}

	return flattenMap("", v.AllSettings()), nil
}

// flattenMap turns nested maps into dot-separated keys:
// {"hook": {"pool_size": 100}} -> {"hook.pool_size": 100}.
func flattenMap(prefix string, data map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]interface{}:
			for nestedKey, nestedValue := range flattenMap(fullKey, v) {
				result[nestedKey] = nestedValue
			}
		default:
			result[fullKey] = value
		}
	}

	return result
}
