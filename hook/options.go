package hook

// SubscribeOption configures a functional subscription.
type SubscribeOption func(*listenerEntry)

// WithPriority sets the subscription priority.
// Default is PriorityMedium.
func WithPriority(priority Priority) SubscribeOption {
	return func(e *listenerEntry) {
		e.priority = priority
	}
}

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(log CtxLogger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = log
	}
}

// WithPoolSize sets the mirror goroutine pool size.
func WithPoolSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		d.poolSize = size
	}
}

// WithPublisher sets the record publisher used for mirroring.
func WithPublisher(publisher RecordPublisher) DispatcherOption {
	return func(d *Dispatcher) {
		d.publisher = publisher
	}
}

// WithMirrorRouter sets the mirror router. Matched hooks are copied to
// the route's topic after dispatch.
func WithMirrorRouter(router *MirrorRouter) DispatcherOption {
	return func(d *Dispatcher) {
		d.router = router
	}
}

// WithMetrics sets the dispatcher metrics recorder.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}
