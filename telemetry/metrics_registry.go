// Package telemetry wires component metrics providers into an
// OpenTelemetry meter provider.
package telemetry

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
)

// MetricsRegistry is the central metrics registration point. Each
// provider gets a dedicated Meter named {namespace}_{provider}.
type MetricsRegistry struct {
	meterProvider metric.MeterProvider
	meters        map[string]metric.Meter
	providers     []component.MetricsProvider
	baseLabels    []attribute.KeyValue
	namespace     string
	enabled       bool
	logger        *logger.CtxZapLogger
	mu            sync.RWMutex
}

// MetricsRegistryOption configures the MetricsRegistry.
type MetricsRegistryOption func(*MetricsRegistry)

// WithNamespace sets the metrics namespace prefix.
func WithNamespace(namespace string) MetricsRegistryOption {
	return func(r *MetricsRegistry) {
		r.namespace = namespace
	}
}

// WithBaseLabels sets the labels attached to every Meter.
func WithBaseLabels(labels []attribute.KeyValue) MetricsRegistryOption {
	return func(r *MetricsRegistry) {
		r.baseLabels = labels
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logger.CtxZapLogger) MetricsRegistryOption {
	return func(r *MetricsRegistry) {
		r.logger = l
	}
}

// NewMetricsRegistry creates a registry over mp; nil falls back to the
// global meter provider.
func NewMetricsRegistry(mp metric.MeterProvider, opts ...MetricsRegistryOption) *MetricsRegistry {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	r := &MetricsRegistry{
		meterProvider: mp,
		meters:        make(map[string]metric.Meter),
		providers:     make([]component.MetricsProvider, 0),
		baseLabels:    make([]attribute.KeyValue, 0),
		namespace:     "modring",
		enabled:       true,
		logger:        logger.GetLogger("modring"),
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register creates a Meter for the provider and calls RegisterMetrics.
// Providers with metrics disabled are skipped silently.
func (r *MetricsRegistry) Register(provider component.MetricsProvider) error {
	if provider == nil {
		return fmt.Errorf("metrics provider is nil")
	}
	if !r.enabled {
		return nil
	}
	if !provider.IsMetricsEnabled() {
		r.logger.Debug("metrics disabled for provider",
			zap.String("provider", provider.MetricsName()))
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.MetricsName()
	if name == "" {
		return fmt.Errorf("metrics provider name is empty")
	}
	for _, p := range r.providers {
		if p.MetricsName() == name {
			return fmt.Errorf("metrics provider %q already registered", name)
		}
	}

	meter := r.getMeterLocked(name)
	if err := provider.RegisterMetrics(meter); err != nil {
		return fmt.Errorf("register metrics for %q failed: %w", name, err)
	}

	r.providers = append(r.providers, provider)
	r.logger.Info("metrics provider registered", zap.String("provider", name))
	return nil
}

// GetMeter returns the Meter for a component name, creating it on
// demand.
func (r *MetricsRegistry) GetMeter(name string) metric.Meter {
	r.mu.RLock()
	if meter, ok := r.meters[name]; ok {
		r.mu.RUnlock()
		return meter
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getMeterLocked(name)
}

func (r *MetricsRegistry) getMeterLocked(name string) metric.Meter {
	if meter, ok := r.meters[name]; ok {
		return meter
	}

	meterName := name
	if r.namespace != "" {
		meterName = r.namespace + "_" + name
	}

	meter := r.meterProvider.Meter(meterName)
	r.meters[name] = meter
	return meter
}

// GetBaseLabels returns the global base labels.
func (r *MetricsRegistry) GetBaseLabels() []attribute.KeyValue {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]attribute.KeyValue{}, r.baseLabels...)
}

// IsEnabled reports whether collection is enabled.
func (r *MetricsRegistry) IsEnabled() bool {
	return r.enabled
}

// GetProviderCount returns the number of registered providers.
func (r *MetricsRegistry) GetProviderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

var _ component.MetricsCollector = (*MetricsRegistry)(nil)
