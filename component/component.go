// Package component defines the component contracts of the framework.
// It is the bottom-most package and must not depend on any other
// framework package, so that every subsystem can implement it without
// import cycles.
package component

import "context"

// Component is the unified lifecycle contract of a framework subsystem.
//
// Lifecycle: Init -> Start -> Stop.
type Component interface {
	// Name returns the unique component name, used for dependency
	// declarations and lookups.
	Name() string

	// DependsOn declares the components this one needs before Init.
	// The registry topologically sorts components by these edges.
	//
	// Optional dependencies use the "optional:" prefix:
	//
	//	return []string{
	//	    "config",           // hard dependency, must be registered
	//	    "logger",           // hard dependency, must be registered
	//	    "optional:kafka",   // skipped silently when absent
	//	}
	DependsOn() []string

	// Init creates the component's resources. It must read its own
	// configuration from loader and must not start serving yet.
	Init(ctx context.Context, loader ConfigLoader) error

	// Start begins active work (connections, schedulers, consumers).
	Start(ctx context.Context) error

	// Stop releases resources. Implementations must be idempotent.
	Stop(ctx context.Context) error
}

// HealthChecker reports whether a component is healthy.
// Components implement it optionally.
type HealthChecker interface {
	// Check returns nil when healthy.
	Check(ctx context.Context) error

	// Name returns the check name, e.g. "banlist", "kafka".
	Name() string
}

// HealthCheckProvider exposes a component's health checker.
type HealthCheckProvider interface {
	GetHealthChecker() HealthChecker
}
