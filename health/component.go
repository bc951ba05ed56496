package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/registry"
)

// Config controls the health aggregator.
type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default health configuration.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Timeout: 5 * time.Second,
	}
}

// Component discovers the checkers other components expose and serves
// an aggregate view.
type Component struct {
	aggregator *Aggregator
	config     Config
	logger     *logger.CtxZapLogger
	components *registry.Registry
}

// NewComponent creates the health component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentHealth
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		"optional:" + component.ComponentKafka,
		"optional:" + component.ComponentBanlist,
	}
}

// SetRegistry receives the component registry (called by the host).
func (c *Component) SetRegistry(r *registry.Registry) {
	c.components = r
}

// Init loads configuration and builds the aggregator.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	c.config = DefaultConfig()
	if loader.IsSet("health") {
		if err := loader.Unmarshal("health", &c.config); err != nil {
			c.logger.WarnCtx(ctx, "health config unmarshal failed, using defaults", zap.Error(err))
		}
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "health component disabled")
		return nil
	}

	c.aggregator = NewAggregator(c.config.Timeout)
	c.aggregator.SetMetadata("service", "modring")

	c.logger.InfoCtx(ctx, "health component initialized",
		zap.Duration("timeout", c.config.Timeout))
	return nil
}

// Start discovers checkers from the other components.
func (c *Component) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}
	c.discoverCheckers(ctx)
	return nil
}

// Stop is a no-op.
func (c *Component) Stop(ctx context.Context) error {
	return nil
}

func (c *Component) discoverCheckers(ctx context.Context) {
	if c.components == nil {
		return
	}

	for _, name := range []string{component.ComponentKafka, component.ComponentBanlist} {
		comp, ok := c.components.Get(name)
		if !ok {
			continue
		}
		provider, ok := comp.(component.HealthCheckProvider)
		if !ok {
			continue
		}
		if checker := provider.GetHealthChecker(); checker != nil {
			c.aggregator.Register(checker)
			c.logger.DebugCtx(ctx, "health checker registered", zap.String("name", checker.Name()))
		}
	}
}

// Check runs all discovered checks.
func (c *Component) Check(ctx context.Context) *Response {
	if !c.config.Enabled || c.aggregator == nil {
		return &Response{
			Status:    StatusHealthy,
			Timestamp: time.Now(),
			Checks:    make(map[string]CheckResult),
			Metadata:  map[string]interface{}{"enabled": false},
		}
	}
	return c.aggregator.Check(ctx)
}

// Aggregator exposes the underlying aggregator for manual registration.
func (c *Component) Aggregator() *Aggregator {
	return c.aggregator
}

// IsEnabled reports whether the component is enabled.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled
}
