package plugin

import (
	"sync"

	"github.com/samber/do/v2"

	"github.com/modring/go-modring-framework/hook"
)

// Host is a plugin's scoped view of the framework. Every hook
// registration made through it is tracked, so disabling the plugin
// tears all of them down at once.
type Host struct {
	hooks    *hook.Registry
	services do.Injector

	mu        sync.Mutex
	listeners []any
	unsubs    []hook.UnsubscribeFunc
}

func newHost(hooks *hook.Registry, services do.Injector) *Host {
	return &Host{
		hooks:    hooks,
		services: services,
	}
}

// Register subscribes a listener's capability interfaces, scoped to
// this plugin.
func (h *Host) Register(listener any, priority hook.Priority) error {
	if err := h.hooks.Register(listener, priority); err != nil {
		return err
	}

	h.mu.Lock()
	h.listeners = append(h.listeners, listener)
	h.mu.Unlock()
	return nil
}

// Subscribe attaches a functional handler, scoped to this plugin.
func (h *Host) Subscribe(kind hook.Kind, fn hook.HandlerFunc, opts ...hook.SubscribeOption) error {
	unsub, err := h.hooks.Subscribe(kind, fn, opts...)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.unsubs = append(h.unsubs, unsub)
	h.mu.Unlock()
	return nil
}

// Services returns the shared service container plugins use to expose
// APIs to each other.
func (h *Host) Services() do.Injector {
	return h.services
}

// teardown removes everything the plugin registered.
func (h *Host) teardown() {
	h.mu.Lock()
	listeners := h.listeners
	unsubs := h.unsubs
	h.listeners = nil
	h.unsubs = nil
	h.mu.Unlock()

	for _, l := range listeners {
		h.hooks.Unregister(l)
	}
	for _, unsub := range unsubs {
		unsub()
	}
}
