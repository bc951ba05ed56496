package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/registry"
)

// Config controls the telemetry component.
type Config struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Namespace   string `mapstructure:"namespace"`
}

// DefaultConfig returns the default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		ServiceName: "modring",
		Namespace:   "modring",
	}
}

// Component owns the meter provider and registers the metrics
// providers other components expose.
type Component struct {
	config        Config
	meterProvider *sdkmetric.MeterProvider
	metrics       *MetricsRegistry
	components    *registry.Registry
	logger        *logger.CtxZapLogger
}

// NewComponent creates the telemetry component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentTelemetry
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		"optional:" + component.ComponentHook,
	}
}

// SetRegistry receives the component registry (called by the host).
func (c *Component) SetRegistry(r *registry.Registry) {
	c.components = r
}

// Init builds the meter provider and the metrics registry.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	c.config = DefaultConfig()
	if loader.IsSet("telemetry") {
		if err := loader.Unmarshal("telemetry", &c.config); err != nil {
			c.logger.WarnCtx(ctx, "telemetry config unmarshal failed, using defaults", zap.Error(err))
		}
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "telemetry component disabled")
		return nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", c.config.ServiceName),
	)
	c.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
	otel.SetMeterProvider(c.meterProvider)

	c.metrics = NewMetricsRegistry(c.meterProvider,
		WithNamespace(c.config.Namespace),
		WithLogger(c.logger))

	c.logger.InfoCtx(ctx, "telemetry component initialized",
		zap.String("service", c.config.ServiceName))
	return nil
}

// Start registers the metrics providers discovered on the registry.
func (c *Component) Start(ctx context.Context) error {
	if !c.config.Enabled || c.components == nil {
		return nil
	}

	comp, ok := c.components.Get(component.ComponentHook)
	if !ok {
		return nil
	}
	source, ok := comp.(interface {
		MetricsProvider() component.MetricsProvider
	})
	if !ok {
		return nil
	}
	provider := source.MetricsProvider()
	if provider == nil {
		return nil
	}

	if err := c.metrics.Register(provider); err != nil {
		c.logger.WarnCtx(ctx, "register hook metrics failed", zap.Error(err))
	}
	return nil
}

// Stop flushes and shuts the meter provider down.
func (c *Component) Stop(ctx context.Context) error {
	if c.meterProvider == nil {
		return nil
	}
	if err := c.meterProvider.Shutdown(ctx); err != nil {
		c.logger.WarnCtx(ctx, "meter provider shutdown failed", zap.Error(err))
	}
	c.meterProvider = nil
	return nil
}

// Metrics returns the metrics registry; nil when disabled.
func (c *Component) Metrics() *MetricsRegistry {
	return c.metrics
}

// IsEnabled reports whether the component is enabled.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled
}
