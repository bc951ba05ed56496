package hook

import (
	"sort"
	"sync"
	"sync/atomic"
)

// UnsubscribeFunc removes a functional subscription.
type UnsubscribeFunc func()

// listenerEntry is one registered handler on one kind.
type listenerEntry struct {
	id       uint64   // unique ID (for unsubscribing)
	priority Priority // lower runs first, CRITICAL is 0
	owner    any      // registered listener instance, nil for Subscribe
	fn       handler
}

// Registry holds listeners per kind, ordered by priority. Listener
// instances must be comparable (pointers in practice); re-registering
// the same instance is an error.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind][]listenerEntry
	owners  map[any][]Kind
	nextID  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Kind][]listenerEntry),
		owners:  make(map[any][]Kind),
	}
}

// Register discovers every handler interface the listener implements
// and subscribes it on those kinds at the given priority.
func (r *Registry) Register(listener any, priority Priority) error {
	if listener == nil {
		return ErrNilHandler
	}
	if !priority.Valid() {
		return ErrInvalidPriority.WithData("priority", int(priority))
	}

	handlers := capabilityHandlers(listener)
	if len(handlers) == 0 {
		return ErrNoCapability
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[listener]; exists {
		return ErrDuplicateListener
	}

	kinds := make([]Kind, 0, len(handlers))
	for kind, fn := range handlers {
		r.insertLocked(listenerEntry{
			id:       atomic.AddUint64(&r.nextID, 1),
			priority: priority,
			owner:    listener,
			fn:       fn,
		}, kind)
		kinds = append(kinds, kind)
	}
	r.owners[listener] = kinds

	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(listener any, priority Priority) {
	if err := r.Register(listener, priority); err != nil {
		panic(err)
	}
}

// Unregister removes every subscription owned by the listener.
// Unknown listeners are a no-op.
func (r *Registry) Unregister(listener any) {
	if listener == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kinds, ok := r.owners[listener]
	if !ok {
		return
	}
	delete(r.owners, listener)

	for _, kind := range kinds {
		entries := r.entries[kind]
		filtered := entries[:0]
		for _, e := range entries {
			if e.owner != listener {
				filtered = append(filtered, e)
			}
		}
		r.entries[kind] = filtered
	}
}

// Subscribe attaches a functional handler to a single kind and returns
// the unsubscribe function.
func (r *Registry) Subscribe(kind Kind, fn HandlerFunc, opts ...SubscribeOption) (UnsubscribeFunc, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	entry := listenerEntry{
		id:       atomic.AddUint64(&r.nextID, 1),
		priority: PriorityMedium,
		fn:       handler(fn),
	}
	for _, opt := range opts {
		opt(&entry)
	}
	if !entry.priority.Valid() {
		return nil, ErrInvalidPriority.WithData("priority", int(entry.priority))
	}

	r.mu.Lock()
	r.insertLocked(entry, kind)
	r.mu.Unlock()

	id := entry.id
	return func() {
		r.unsubscribe(kind, id)
	}, nil
}

// insertLocked appends and restores priority order. Stable sort keeps
// registration order within a priority tier.
func (r *Registry) insertLocked(entry listenerEntry, kind Kind) {
	r.entries[kind] = append(r.entries[kind], entry)
	sort.SliceStable(r.entries[kind], func(i, j int) bool {
		return r.entries[kind][i].priority < r.entries[kind][j].priority
	})
}

func (r *Registry) unsubscribe(kind Kind, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.entries[kind]
	for i, e := range entries {
		if e.id == id {
			r.entries[kind] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// listenersFor returns a snapshot copy so in-flight dispatch is
// unaffected by concurrent (un)registration.
func (r *Registry) listenersFor(kind Kind) []listenerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]listenerEntry, len(r.entries[kind]))
	copy(entries, r.entries[kind])
	return entries
}

// ListenerCount returns the number of handlers on a kind.
func (r *Registry) ListenerCount(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[kind])
}

// Registered reports whether the listener instance is registered.
func (r *Registry) Registered(listener any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.owners[listener]
	return ok
}
