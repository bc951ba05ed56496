// Package registry implements the component registry: it owns component
// registration, dependency resolution and lifecycle execution. It is a
// kernel package and depends only on component and logger.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
	"go.uber.org/zap"
)

// Registry implements component.Registry.
type Registry struct {
	mu         sync.RWMutex
	components map[string]component.Component
	logger     *logger.CtxZapLogger // optional, injected after construction
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]component.Component),
	}
}

// Register adds a component. Names must be unique and non-empty.
func (r *Registry) Register(comp component.Component) error {
	if comp == nil {
		return fmt.Errorf("component cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := comp.Name()
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("component '%s' is already registered", name)
	}

	r.components[name] = comp

	// components that want a back-reference get it injected
	if setter, ok := comp.(interface{ SetRegistry(*Registry) }); ok {
		setter.SetRegistry(r)
	}

	return nil
}

// MustRegister registers a component and panics on failure. Used for
// kernel components where failing fast is the right call.
func (r *Registry) MustRegister(comp component.Component) {
	if err := r.Register(comp); err != nil {
		panic(fmt.Sprintf("register kernel component '%s' failed: %v", comp.Name(), err))
	}
}

// SetLogger injects the logger. Allowed exactly once.
func (r *Registry) SetLogger(l *logger.CtxZapLogger) {
	if r.logger != nil {
		panic("registry logger already set")
	}
	if l == nil {
		panic("registry logger cannot be nil")
	}
	r.logger = l
}

func (r *Registry) logInfo(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.InfoCtx(ctx, msg, fields...)
	}
}

func (r *Registry) logDebug(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.DebugCtx(ctx, msg, fields...)
	}
}

func (r *Registry) logError(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.ErrorCtx(ctx, msg, fields...)
	}
}

// Get returns a component by name.
func (r *Registry) Get(name string) (component.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comp, ok := r.components[name]
	return comp, ok
}

// MustGet returns a component or panics when absent.
func (r *Registry) MustGet(name string) component.Component {
	comp, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("component '%s' is not registered", name))
	}
	return comp
}

// GetTyped returns a component cast to T; false when absent or of a
// different type.
func GetTyped[T component.Component](r *Registry, name string) (T, bool) {
	var zero T
	comp, ok := r.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// MustGetTyped returns a component cast to T or panics.
func MustGetTyped[T component.Component](r *Registry, name string) T {
	typed, ok := GetTyped[T](r, name)
	if !ok {
		var zero T
		panic(fmt.Sprintf("component '%s' missing or not of type %T", name, zero))
	}
	return typed
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.components[name]
	return exists
}

// Resolve returns all components in topological dependency order.
func (r *Registry) Resolve() ([]component.Component, error) {
	layers, err := r.resolveLayers()
	if err != nil {
		return nil, err
	}

	var result []component.Component
	for _, layer := range layers {
		result = append(result, layer...)
	}
	return result, nil
}

// Init initializes all components in dependency order, passing each one
// the ConfigLoader (the config component itself).
func (r *Registry) Init(ctx context.Context) error {
	r.logInfo(ctx, "initializing components", zap.Int("total", len(r.components)))

	configComp, ok := r.Get(component.ComponentConfig)
	if !ok {
		return fmt.Errorf("config component is not registered")
	}
	loader, ok := configComp.(component.ConfigLoader)
	if !ok {
		return fmt.Errorf("config component does not implement ConfigLoader")
	}

	layers, err := r.resolveLayers()
	if err != nil {
		r.logError(ctx, "resolving component dependencies failed", zap.Error(err))
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for layerIdx, layer := range layers {
		r.logDebug(ctx, "initializing component layer",
			zap.Int("layer", layerIdx),
			zap.Int("count", len(layer)))

		if err := r.runLayer(layer, func(c component.Component) error {
			r.logDebug(ctx, "initializing component", zap.String("component", c.Name()))
			return c.Init(ctx, loader)
		}); err != nil {
			r.logError(ctx, "component init failed", zap.Error(err))
			return err
		}
	}

	r.logInfo(ctx, "all components initialized")
	return nil
}

// Start starts all components in dependency order.
func (r *Registry) Start(ctx context.Context) error {
	r.logInfo(ctx, "starting components")

	layers, err := r.resolveLayers()
	if err != nil {
		r.logError(ctx, "resolving component dependencies failed", zap.Error(err))
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for layerIdx, layer := range layers {
		r.logDebug(ctx, "starting component layer",
			zap.Int("layer", layerIdx),
			zap.Int("count", len(layer)))

		if err := r.runLayer(layer, func(c component.Component) error {
			return c.Start(ctx)
		}); err != nil {
			r.logError(ctx, "component start failed", zap.Error(err))
			return err
		}
	}

	r.logInfo(ctx, "all components started")
	return nil
}

// Stop stops all components in reverse order. Stop errors are ignored so
// every component gets its chance to shut down.
func (r *Registry) Stop(ctx context.Context) error {
	r.logInfo(ctx, "stopping components")

	layers, err := r.resolveLayers()
	if err != nil {
		r.logError(ctx, "resolving component dependencies failed", zap.Error(err))
		return fmt.Errorf("resolve component dependencies: %w", err)
	}

	for i := len(layers) - 1; i >= 0; i-- {
		r.stopLayer(ctx, layers[i])
	}

	r.logInfo(ctx, "all components stopped")
	return nil
}

// runLayer runs one lifecycle function over a layer, concurrently when
// the layer has more than one component.
func (r *Registry) runLayer(layer []component.Component, fn func(component.Component) error) error {
	if len(layer) == 0 {
		return nil
	}

	if len(layer) == 1 {
		comp := layer[0]
		if err := fn(comp); err != nil {
			return fmt.Errorf("component '%s' failed: %w", comp.Name(), err)
		}
		return nil
	}

	type result struct {
		comp component.Component
		err  error
	}

	results := make(chan result, len(layer))
	for _, comp := range layer {
		go func(c component.Component) {
			results <- result{comp: c, err: fn(c)}
		}(comp)
	}

	for range layer {
		res := <-results
		if res.err != nil {
			return fmt.Errorf("component '%s' failed: %w", res.comp.Name(), res.err)
		}
	}

	return nil
}

func (r *Registry) stopLayer(ctx context.Context, layer []component.Component) {
	if len(layer) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, comp := range layer {
		wg.Add(1)
		go func(c component.Component) {
			defer wg.Done()
			_ = c.Stop(ctx)
		}(comp)
	}
	wg.Wait()
}

// resolveLayers groups components into dependency layers so each layer
// can run concurrently.
func (r *Registry) resolveLayers() ([][]component.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inDegree := make(map[string]int)
	graph := make(map[string][]string)

	for name := range r.components {
		inDegree[name] = 0
		graph[name] = []string{}
	}

	for name, comp := range r.components {
		for _, dep := range comp.DependsOn() {
			depName, isOptional := strings.CutPrefix(dep, "optional:")

			if _, ok := r.components[depName]; !ok {
				if !isOptional {
					return nil, fmt.Errorf("component '%s' depends on unregistered '%s'", name, depName)
				}
				continue
			}

			graph[depName] = append(graph[depName], name)
			inDegree[name]++
		}
	}

	var layers [][]component.Component
	processed := make(map[string]bool)

	for len(processed) < len(r.components) {
		var currentLayer []string
		for name, degree := range inDegree {
			if processed[name] {
				continue
			}
			if degree == 0 {
				currentLayer = append(currentLayer, name)
				processed[name] = true
			}
		}

		if len(currentLayer) == 0 {
			return nil, fmt.Errorf("circular component dependency detected")
		}

		layer := make([]component.Component, 0, len(currentLayer))
		for _, name := range currentLayer {
			layer = append(layer, r.components[name])
			for _, next := range graph[name] {
				inDegree[next]--
			}
		}

		layers = append(layers, layer)
	}

	return layers, nil
}
