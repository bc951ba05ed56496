package hook

import (
	"context"

	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/registry"
)

// Component wires the dispatcher into the component lifecycle.
type Component struct {
	dispatcher *Dispatcher
	hooks      *Registry
	components *registry.Registry
	logger     *logger.CtxZapLogger
	metrics    *Metrics
	config     Config
}

// NewComponent creates the hook component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentHook
}

// DependsOn returns the component dependencies. Kafka is optional:
// without it mirror routes stay configured but unpublished.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		"optional:" + component.ComponentKafka,
	}
}

// SetRegistry receives the component registry (called by the host).
func (c *Component) SetRegistry(r *registry.Registry) {
	c.components = r
}

// Init loads configuration and builds the dispatcher.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	c.config = DefaultConfig()
	if err := loader.Unmarshal("hook", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "using default hook configuration")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "hook component disabled")
		return nil
	}

	c.hooks = NewRegistry()
	c.metrics = NewMetrics(c.config.Metrics)

	opts := []DispatcherOption{
		WithLogger(c.logger),
		WithPoolSize(c.config.PoolSize),
		WithMetrics(c.metrics),
	}
	if len(c.config.Mirror) > 0 {
		router := NewMirrorRouter()
		router.LoadRoutes(c.config.Mirror)
		opts = append(opts, WithMirrorRouter(router))
	}
	c.dispatcher = NewDispatcher(c.hooks, opts...)

	c.logger.InfoCtx(ctx, "hook component initialized",
		zap.Int("pool_size", c.config.PoolSize),
		zap.Int("mirror_routes", len(c.config.Mirror)))
	return nil
}

// Start wires the optional record publisher.
func (c *Component) Start(ctx context.Context) error {
	if c.dispatcher == nil || c.components == nil {
		return nil
	}

	if comp, ok := c.components.Get(component.ComponentKafka); ok {
		if pub, ok := comp.(RecordPublisher); ok {
			c.dispatcher.publisher = pub
			c.logger.InfoCtx(ctx, "hook mirroring attached to kafka publisher")
		}
	}
	return nil
}

// Stop closes the dispatcher.
func (c *Component) Stop(ctx context.Context) error {
	if c.dispatcher != nil {
		c.dispatcher.Close()
		c.logger.InfoCtx(ctx, "hook component stopped")
	}
	return nil
}

// Dispatcher returns the dispatcher; nil when disabled.
func (c *Component) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Hooks returns the listener registry; nil when disabled.
func (c *Component) Hooks() *Registry {
	return c.hooks
}

// MetricsProvider returns the hook metrics provider for the collector.
func (c *Component) MetricsProvider() component.MetricsProvider {
	if c.metrics == nil {
		return nil
	}
	return c.metrics
}

// IsEnabled reports whether the component is active.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled && c.dispatcher != nil
}
