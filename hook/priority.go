package hook

import "fmt"

// Priority orders listener execution. Lower values run first. Listeners
// at the same priority run in registration order.
type Priority int

const (
	// PriorityCritical runs before everything else. Reserved for
	// listeners that absolutely must see the event first; use sparingly.
	PriorityCritical Priority = iota

	// PriorityHigh may cancel the action, but PriorityMedium is the
	// preferred tier for that.
	PriorityHigh

	// PriorityMedium is the preferred tier for canceling or rewriting
	// an action.
	PriorityMedium

	// PriorityLow must not cancel the action and must return quickly.
	PriorityLow
)

// String returns the lowercase name used in configs and logs.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the four defined tiers.
func (p Priority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityLow
}

// ParsePriority parses a config string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unknown priority %q (valid: critical, high, medium, low)", s)
	}
}
