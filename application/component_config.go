package application

import (
	"context"
	"fmt"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/config"
)

// ConfigComponent wraps the multi-source loader as a lifecycle
// component and implements component.ConfigLoader for the rest of the
// registry.
type ConfigComponent struct {
	configPath string
	envPrefix  string
	loader     *config.Loader
}

// NewConfigComponent creates the config component. A missing file is
// fine; env overrides still apply.
func NewConfigComponent(configPath, envPrefix string) *ConfigComponent {
	if envPrefix == "" {
		envPrefix = "MODRING"
	}
	return &ConfigComponent{
		configPath: configPath,
		envPrefix:  envPrefix,
	}
}

// Name returns the component name.
func (c *ConfigComponent) Name() string {
	return component.ComponentConfig
}

// DependsOn returns no dependencies; config loads first.
func (c *ConfigComponent) DependsOn() []string {
	return []string{}
}

// Init builds and loads the sources. File first, env on top.
func (c *ConfigComponent) Init(ctx context.Context, loader component.ConfigLoader) error {
	l := config.NewLoader()
	if c.configPath != "" {
		l.AddSource(config.NewFileSource(c.configPath, 10))
	}
	l.AddSource(config.NewEnvSource(c.envPrefix, 100))

	if err := l.Load(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	c.loader = l
	return nil
}

// Start is a no-op.
func (c *ConfigComponent) Start(ctx context.Context) error {
	return nil
}

// Stop is a no-op.
func (c *ConfigComponent) Stop(ctx context.Context) error {
	return nil
}

// GetLoader returns the underlying loader.
func (c *ConfigComponent) GetLoader() *config.Loader {
	return c.loader
}

// component.ConfigLoader delegation.

func (c *ConfigComponent) Get(key string) interface{} {
	return c.loader.Get(key)
}

func (c *ConfigComponent) Unmarshal(key string, v interface{}) error {
	return c.loader.Unmarshal(key, v)
}

func (c *ConfigComponent) GetString(key string) string {
	return c.loader.GetString(key)
}

func (c *ConfigComponent) GetInt(key string) int {
	return c.loader.GetInt(key)
}

func (c *ConfigComponent) GetBool(key string) bool {
	return c.loader.GetBool(key)
}

func (c *ConfigComponent) IsSet(key string) bool {
	return c.loader.IsSet(key)
}
