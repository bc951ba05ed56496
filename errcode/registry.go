package errcode

import (
	"fmt"
	"sync"
)

// Registry guards against error code collisions across modules.
type Registry struct {
	mu     sync.RWMutex
	codes  map[int]string // code -> module:msgKey
	locked bool
}

var globalRegistry = &Registry{
	codes: make(map[int]string),
}

// Register adds an error code to the global registry.
// Panics on conflicting re-registration; idempotent for identical keys.
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register adds an error code to the registry.
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locked {
		panic(fmt.Sprintf("registry is locked, cannot register error code: %d", err.Code()))
	}

	code := err.Code()
	key := fmt.Sprintf("%s:%s", err.Module(), err.MsgKey())

	if existingKey, exists := r.codes[code]; exists {
		if existingKey != key {
			panic(fmt.Sprintf(
				"error code conflict: code %d is already registered as %s, cannot register as %s",
				code, existingKey, key,
			))
		}
		return err
	}

	r.codes[code] = key
	return err
}

// Lock prevents further registrations. Call once startup is complete.
func (r *Registry) Lock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = true
}

// Unlock re-allows registrations (used by tests).
func (r *Registry) Unlock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = false
}

// IsLocked reports whether the registry is locked.
func (r *Registry) IsLocked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// Lock locks the global registry.
func Lock() {
	globalRegistry.Lock()
}

// Unlock unlocks the global registry.
func Unlock() {
	globalRegistry.Unlock()
}

// Registered reports whether code is known to the global registry.
func Registered(code int) bool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	_, ok := globalRegistry.codes[code]
	return ok
}
