package hook

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsConfig holds hook metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Metrics implements component.MetricsProvider for dispatch
// instrumentation. All record methods are nil-safe.
type Metrics struct {
	config     MetricsConfig
	registered bool
	mu         sync.RWMutex

	dispatched       metric.Int64Counter
	handled          metric.Int64Counter
	dispatchDuration metric.Float64Histogram
}

// NewMetrics creates a hook metrics provider.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{config: cfg}
}

// MetricsName returns the metrics group name.
func (m *Metrics) MetricsName() string {
	return "hook"
}

// IsMetricsEnabled reports whether collection is enabled.
func (m *Metrics) IsMetricsEnabled() bool {
	return m != nil && m.config.Enabled
}

// RegisterMetrics registers all hook instruments on the meter.
func (m *Metrics) RegisterMetrics(meter metric.Meter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	var err error

	m.dispatched, err = meter.Int64Counter(
		"hook_dispatched_total",
		metric.WithDescription("Total number of hooks dispatched"),
		metric.WithUnit("{hook}"),
	)
	if err != nil {
		return err
	}

	m.handled, err = meter.Int64Counter(
		"hook_handled_total",
		metric.WithDescription("Total number of listener invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return err
	}

	m.dispatchDuration, err = meter.Float64Histogram(
		"hook_dispatch_duration_seconds",
		metric.WithDescription("Hook dispatch duration distribution"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.registered = true
	return nil
}

// IsRegistered reports whether the instruments were registered.
func (m *Metrics) IsRegistered() bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registered
}

// RecordDispatched records one completed dispatch.
func (m *Metrics) RecordDispatched(ctx context.Context, kind, decision string, duration time.Duration) {
	if !m.IsRegistered() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("decision", decision),
	}

	m.dispatched.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordHandled records one listener invocation. Result is the
// decision string, "error" or "panic".
func (m *Metrics) RecordHandled(ctx context.Context, kind, priority, result string) {
	if !m.IsRegistered() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("priority", priority),
		attribute.String("result", result),
	}

	m.handled.Add(ctx, 1, metric.WithAttributes(attrs...))
}
