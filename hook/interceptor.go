package hook

import "context"

// Next continues the chain toward the listeners and returns the
// aggregate decision.
type Next func(ctx context.Context, e Event) (Decision, error)

// Interceptor wraps every dispatch. Useful for logging, metrics and
// coarse filtering; an interceptor may short-circuit by returning
// without calling next.
type Interceptor func(ctx context.Context, e Event, next Next) (Decision, error)
