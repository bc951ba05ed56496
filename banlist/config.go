package banlist

import (
	"fmt"
	"time"
)

// Config holds banlist component settings.
type Config struct {
	// Enabled toggles the component.
	Enabled bool `mapstructure:"enabled"`

	// KeyPrefix namespaces the ban keys in Redis.
	KeyPrefix string `mapstructure:"key_prefix"`

	// RefreshInterval is how often the in-memory snapshot is reloaded.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// Redis connection settings.
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig returns the default banlist configuration. Disabled
// until a Redis address is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		KeyPrefix:       "modring:banlist",
		RefreshInterval: 30 * time.Second,
	}
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "modring:banlist"
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 30 * time.Second
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("refresh_interval must be at least 1s, got: %s", c.RefreshInterval)
	}
	return nil
}
