package plugin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/registry"
)

// Config controls the plugin manager component.
type Config struct {
	// Enabled turns the plugin manager on. Default true.
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default plugin configuration.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// Component wires the plugin manager onto the shared hook registry.
type Component struct {
	config     Config
	manager    *Manager
	components *registry.Registry
	logger     *logger.CtxZapLogger
}

// NewComponent creates the plugin component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentPlugin
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		component.ComponentHook,
	}
}

// SetRegistry receives the component registry (called by the host).
func (c *Component) SetRegistry(r *registry.Registry) {
	c.components = r
}

// Init loads configuration and builds the manager over the hook
// component's registry.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	c.config = DefaultConfig()
	if err := loader.Unmarshal("plugin", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "using default plugin configuration")
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "plugin component disabled")
		return nil
	}

	hooks, err := c.hookRegistry()
	if err != nil {
		return err
	}
	c.manager = NewManager(hooks, c.logger)

	c.logger.InfoCtx(ctx, "plugin component initialized")
	return nil
}

func (c *Component) hookRegistry() (*hook.Registry, error) {
	if c.components == nil {
		return nil, fmt.Errorf("plugin component requires the component registry")
	}
	comp, ok := c.components.Get(component.ComponentHook)
	if !ok {
		return nil, fmt.Errorf("plugin component requires the hook component")
	}
	hookComp, ok := comp.(*hook.Component)
	if !ok || !hookComp.IsEnabled() {
		return nil, fmt.Errorf("plugin component requires the hook component to be enabled")
	}
	return hookComp.Hooks(), nil
}

// Start is a no-op; plugins are loaded and enabled by the application.
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop disables every enabled plugin.
func (c *Component) Stop(ctx context.Context) error {
	if c.manager == nil {
		return nil
	}
	c.manager.DisableAll(ctx)
	c.logger.InfoCtx(ctx, "plugin component stopped",
		zap.Int("loaded", len(c.manager.List())))
	return nil
}

// Manager returns the plugin manager; nil when disabled.
func (c *Component) Manager() *Manager {
	return c.manager
}

// IsEnabled reports whether the component is enabled.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled
}
