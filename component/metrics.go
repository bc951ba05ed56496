package component

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider is implemented by components that expose metrics.
// The host's metrics registry calls RegisterMetrics after component Init.
//
// Example:
//
//	func (c *Component) MetricsName() string { return "hook" }
//
//	func (c *Component) RegisterMetrics(meter metric.Meter) error {
//	    counter, err := meter.Int64Counter("hook_dispatched_total")
//	    if err != nil {
//	        return err
//	    }
//	    c.dispatched = counter
//	    return nil
//	}
type MetricsProvider interface {
	// MetricsName returns the metrics group name. Short, lowercase,
	// e.g. "hook", "banlist", "kafka".
	MetricsName() string

	// RegisterMetrics registers all instruments on the provided Meter.
	RegisterMetrics(meter metric.Meter) error

	// IsMetricsEnabled reports whether collection is enabled for this
	// component.
	IsMetricsEnabled() bool
}

// MetricsCollector is the centralized registry the host wires providers
// into.
type MetricsCollector interface {
	// Register wires a provider; its RegisterMetrics is called with a
	// pre-configured Meter.
	Register(provider MetricsProvider) error

	// GetMeter returns a Meter for the given component name.
	GetMeter(name string) metric.Meter

	// GetBaseLabels returns the global base labels (server name, env).
	GetBaseLabels() []attribute.KeyValue

	// IsEnabled reports whether metrics collection is globally enabled.
	IsEnabled() bool
}
