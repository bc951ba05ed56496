package hook

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// CtxLogger is the logging surface the dispatcher needs. Satisfied by
// *logger.CtxZapLogger and by the test logger.
type CtxLogger interface {
	DebugCtx(ctx context.Context, msg string, fields ...zap.Field)
	InfoCtx(ctx context.Context, msg string, fields ...zap.Field)
	WarnCtx(ctx context.Context, msg string, fields ...zap.Field)
	ErrorCtx(ctx context.Context, msg string, fields ...zap.Field)
}

// Dispatcher delivers events to registered listeners in priority order.
// Dispatch is strictly synchronous: when it returns, every listener
// that was going to run has run. The only asynchronous path is
// mirroring matched hooks to an external topic.
type Dispatcher struct {
	registry *Registry

	mu           sync.RWMutex
	interceptors []Interceptor

	pool      *ants.Pool
	poolSize  int
	logger    CtxLogger
	metrics   *Metrics
	publisher RecordPublisher
	router    *MirrorRouter
	closed    int32
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		poolSize: 100,
	}
	if d.registry == nil {
		d.registry = NewRegistry()
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = noopLogger{}
	}

	var err error
	d.pool, err = ants.NewPool(d.poolSize)
	if err != nil {
		d.logger.ErrorCtx(context.Background(), "create mirror pool failed, using default size",
			zap.Error(err))
		d.pool, _ = ants.NewPool(100)
	}

	return d
}

// Registry returns the listener registry the dispatcher delivers to.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Use registers a global interceptor. Interceptors wrap every dispatch
// in registration order.
func (d *Dispatcher) Use(interceptor Interceptor) {
	d.mu.Lock()
	d.interceptors = append(d.interceptors, interceptor)
	d.mu.Unlock()
}

// Dispatch offers the event to every listener of its kind, highest
// priority first, and returns the aggregate decision.
//
// ClassNotify hooks run every listener and always return Allow.
// ClassCancelable and ClassFilter hooks stop at the first listener
// whose decision cancels; listeners after it never see the event. A
// listener error or panic is logged and treated as Allow, and the
// chain continues.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (Decision, error) {
	if e == nil {
		return Allow(), nil
	}
	if atomic.LoadInt32(&d.closed) == 1 {
		return Allow(), ErrDispatcherClosed
	}
	if !e.Kind().Valid() {
		return Allow(), ErrInvalidKind.WithData("kind", int(e.Kind()))
	}

	start := time.Now()

	// Snapshot interceptors and listeners so concurrent registration
	// never affects an in-flight dispatch.
	d.mu.RLock()
	interceptors := make([]Interceptor, len(d.interceptors))
	copy(interceptors, d.interceptors)
	d.mu.RUnlock()
	entries := d.registry.listenersFor(e.Kind())

	chain := d.buildChain(entries, interceptors)
	decision, err := chain(ctx, e)

	d.metrics.RecordDispatched(ctx, e.Kind().String(), decision.String(), time.Since(start))
	d.mirror(ctx, e, decision)

	return decision, err
}

// DispatchLoginCheck runs the login gate for a connecting player and
// returns the kick reason when any listener rejects the login.
func (d *Dispatcher) DispatchLoginCheck(ctx context.Context, name, address string) (string, bool, error) {
	decision, err := d.Dispatch(ctx, NewLoginCheckEvent(name, address))
	if err != nil {
		return "", false, err
	}
	reason, kicked := decision.KickReason()
	return reason, kicked, nil
}

// buildChain wraps the listener walk with the interceptors, outermost
// first.
func (d *Dispatcher) buildChain(entries []listenerEntry, interceptors []Interceptor) Next {
	chain := func(ctx context.Context, e Event) (Decision, error) {
		return d.executeListeners(ctx, e, entries), nil
	}

	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor := interceptors[i]
		next := chain
		chain = func(ctx context.Context, e Event) (Decision, error) {
			return interceptor(ctx, e, next)
		}
	}

	return chain
}

func (d *Dispatcher) executeListeners(ctx context.Context, e Event, entries []listenerEntry) Decision {
	class := e.Kind().Class()
	kind := e.Kind().String()

	for _, entry := range entries {
		decision, err := d.invoke(ctx, e, entry)
		if err != nil {
			// Failure isolation: a broken listener never cancels the
			// event or starves the listeners after it.
			d.logger.ErrorCtx(ctx, "listener failed",
				zap.String("kind", kind),
				zap.String("priority", entry.priority.String()),
				zap.Error(err))
			d.metrics.RecordHandled(ctx, kind, entry.priority.String(), "error")
			continue
		}

		d.metrics.RecordHandled(ctx, kind, entry.priority.String(), decision.String())

		if class != ClassNotify && decision.Canceled() {
			return decision
		}
	}

	return Allow()
}

// invoke runs one handler with panic isolation.
func (d *Dispatcher) invoke(ctx context.Context, e Event, entry listenerEntry) (decision Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorCtx(ctx, "listener panicked",
				zap.String("kind", e.Kind().String()),
				zap.Any("panic", r),
				zap.Stack("stack"))
			decision = Allow()
			err = ErrListenerPanic.WithData("panic", fmt.Sprint(r))
		}
	}()
	return entry.fn(ctx, e)
}

// mirror copies the dispatched event to the configured topic, if any.
// Mirroring is fire-and-forget and never changes the dispatch result.
func (d *Dispatcher) mirror(ctx context.Context, e Event, decision Decision) {
	if d.router == nil {
		return
	}
	route := d.router.Match(e.Kind().String())
	if route == nil {
		return
	}
	if d.publisher == nil {
		d.logger.WarnCtx(ctx, "mirror route matched but no publisher configured",
			zap.String("kind", e.Kind().String()),
			zap.String("topic", route.Topic))
		return
	}
	if route.Topic == "" {
		d.logger.WarnCtx(ctx, "mirror route has no topic",
			zap.String("kind", e.Kind().String()))
		return
	}

	record, err := NewRecord(e, decision, traceIDFromContext(ctx))
	if err != nil {
		d.logger.ErrorCtx(ctx, "serialize hook record failed",
			zap.String("kind", e.Kind().String()),
			zap.Error(err))
		return
	}

	kind := e.Kind().String()
	topic := route.Topic
	submitErr := d.pool.Submit(func() {
		if err := d.publisher.PublishJSON(context.Background(), topic, kind, record); err != nil {
			d.logger.ErrorCtx(context.Background(), "mirror publish failed",
				zap.String("kind", kind),
				zap.String("topic", topic),
				zap.Error(err))
		}
	})
	if submitErr != nil {
		d.logger.ErrorCtx(ctx, "submit mirror task failed",
			zap.String("kind", kind),
			zap.Error(submitErr))
	}
}

// Close stops the dispatcher. Further Dispatch calls fail with
// ErrDispatcherClosed.
func (d *Dispatcher) Close() {
	atomic.StoreInt32(&d.closed, 1)
	if d.pool != nil {
		d.pool.Release()
	}
}

// noopLogger discards everything; used when no logger is configured.
type noopLogger struct{}

func (noopLogger) DebugCtx(context.Context, string, ...zap.Field) {}
func (noopLogger) InfoCtx(context.Context, string, ...zap.Field)  {}
func (noopLogger) WarnCtx(context.Context, string, ...zap.Field)  {}
func (noopLogger) ErrorCtx(context.Context, string, ...zap.Field) {}
