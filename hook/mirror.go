package hook

import (
	"sort"
	"strings"
	"sync"
)

// MirrorRoute maps a kind pattern to an external topic.
type MirrorRoute struct {
	Topic string `mapstructure:"topic"`
}

// MirrorRouter matches kind names against configured mirror routes.
// Patterns use ":" as the segment separator and support suffix
// wildcards ("player:*"), single-segment wildcards ("block:*") and the
// catch-all "*". Exact matches win over wildcards, longer prefixes win
// over shorter ones.
type MirrorRouter struct {
	mu     sync.RWMutex
	routes map[string]MirrorRoute
	sorted []mirrorEntry
}

type mirrorEntry struct {
	pattern    string
	route      MirrorRoute
	isWildcard bool
	rank       int // lower matches first
}

// NewMirrorRouter creates an empty router.
func NewMirrorRouter() *MirrorRouter {
	return &MirrorRouter{
		routes: make(map[string]MirrorRoute),
	}
}

// LoadRoutes replaces the route table.
func (r *MirrorRouter) LoadRoutes(routes map[string]MirrorRoute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = routes
	r.rebuildSorted()
}

func (r *MirrorRouter) rebuildSorted() {
	r.sorted = make([]mirrorEntry, 0, len(r.routes))

	for pattern, route := range r.routes {
		entry := mirrorEntry{
			pattern:    pattern,
			route:      route,
			isWildcard: strings.Contains(pattern, "*"),
		}

		switch {
		case !entry.isWildcard:
			entry.rank = 0
		case pattern == "*":
			entry.rank = 1000
		default:
			// Longer fixed prefix matches first: "block:complex_*"
			// over "block:*".
			entry.rank = 100 - len(strings.TrimSuffix(pattern, "*"))
		}

		r.sorted = append(r.sorted, entry)
	}

	sort.Slice(r.sorted, func(i, j int) bool {
		return r.sorted[i].rank < r.sorted[j].rank
	})
}

// Match returns the route for a kind name, or nil.
func (r *MirrorRouter) Match(kindName string) *MirrorRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.sorted {
		if matchPattern(entry.pattern, kindName) {
			route := entry.route
			return &route
		}
	}
	return nil
}

func matchPattern(pattern, kindName string) bool {
	if pattern == kindName || pattern == "*" {
		return true
	}

	if strings.HasSuffix(pattern, ":*") {
		prefix := strings.TrimSuffix(pattern, ":*")
		return strings.HasPrefix(kindName, prefix+":")
	}

	// Trailing wildcard inside a segment: "block:complex_*".
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(kindName, strings.TrimSuffix(pattern, "*"))
	}

	if strings.Contains(pattern, "*") {
		return matchSegments(pattern, kindName)
	}

	return false
}

// matchSegments treats "*" as matching exactly one segment.
func matchSegments(pattern, kindName string) bool {
	patternParts := strings.Split(pattern, ":")
	nameParts := strings.Split(kindName, ":")

	if len(patternParts) != len(nameParts) {
		return false
	}
	for i, pp := range patternParts {
		if pp == "*" {
			continue
		}
		if pp != nameParts[i] {
			return false
		}
	}
	return true
}

// HasRoutes reports whether any routes are configured.
func (r *MirrorRouter) HasRoutes() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes) > 0
}

// RouteCount returns the number of configured routes.
func (r *MirrorRouter) RouteCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
