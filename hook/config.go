package hook

// Config holds hook component settings.
//
// Mirror route keys are kind patterns with ":" separators, e.g.
//
//	hook:
//	  pool_size: 50
//	  mirror:
//	    "player:chat": { topic: "game.chat" }
//	    "block:*":     { topic: "game.blocks" }
type Config struct {
	Enabled  bool                   `mapstructure:"enabled"`
	PoolSize int                    `mapstructure:"pool_size"`
	Mirror   map[string]MirrorRoute `mapstructure:"mirror"`
	Metrics  MetricsConfig          `mapstructure:"metrics"`
}

// DefaultConfig returns the default hook configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		PoolSize: 100,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	for pattern, route := range c.Mirror {
		if route.Topic == "" {
			return ErrTopicRequired.WithData("pattern", pattern)
		}
	}
	return nil
}
