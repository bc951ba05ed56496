package registry

import (
	"context"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
	"go.uber.org/zap"
)

// ComponentInjector fetches components from a Registry and hands them to
// a target, removing the repeated lookup/check/assign boilerplate.
type ComponentInjector struct {
	registry *Registry
	logger   *logger.CtxZapLogger
}

// NewInjector creates an injector.
func NewInjector(r *Registry, l *logger.CtxZapLogger) *ComponentInjector {
	return &ComponentInjector{registry: r, logger: l}
}

// IsValid reports whether the injector can be used.
func (i *ComponentInjector) IsValid() bool {
	return i.registry != nil
}

// Inject looks up a component, runs the optional checker, and on success
// passes the component to the inject function.
//
//	injector := registry.NewInjector(reg, log)
//	registry.Inject(injector, ctx, component.ComponentKafka,
//	    func(kc *kafka.Component) bool { return kc.IsEnabled() },
//	    func(kc *kafka.Component) { c.publisher = kc.GetProducer() },
//	)
func Inject[T component.Component](
	i *ComponentInjector,
	ctx context.Context,
	name string,
	checker func(T) bool,
	injector func(T),
) bool {
	if i == nil || i.registry == nil {
		return false
	}

	comp, ok := GetTyped[T](i.registry, name)
	if !ok {
		if i.logger != nil {
			i.logger.DebugCtx(ctx, "optional component not registered", zap.String("component", name))
		}
		return false
	}

	if checker != nil && !checker(comp) {
		if i.logger != nil {
			i.logger.DebugCtx(ctx, "component not eligible for injection", zap.String("component", name))
		}
		return false
	}

	injector(comp)
	return true
}
