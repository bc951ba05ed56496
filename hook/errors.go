package hook

import "github.com/modring/go-modring-framework/errcode"

// Module code 20 is reserved for the hook module.
const moduleCode = 20

var (
	// ErrDuplicateListener is returned when a listener instance is
	// registered twice on the same registry.
	ErrDuplicateListener = errcode.Register(errcode.New(moduleCode, 1, "hook",
		"error.hook.duplicate_listener", "listener already registered"))

	// ErrNoCapability is returned when a registered listener
	// implements none of the handler interfaces.
	ErrNoCapability = errcode.Register(errcode.New(moduleCode, 2, "hook",
		"error.hook.no_capability", "listener implements no handler interface"))

	// ErrInvalidKind is returned for unknown hook kinds.
	ErrInvalidKind = errcode.Register(errcode.New(moduleCode, 3, "hook",
		"error.hook.invalid_kind", "invalid hook kind"))

	// ErrNilHandler is returned when Subscribe receives a nil function.
	ErrNilHandler = errcode.Register(errcode.New(moduleCode, 4, "hook",
		"error.hook.nil_handler", "handler function is nil"))

	// ErrInvalidPriority is returned for out-of-range priorities.
	ErrInvalidPriority = errcode.Register(errcode.New(moduleCode, 5, "hook",
		"error.hook.invalid_priority", "invalid priority"))

	// ErrDispatcherClosed is returned when dispatching after Stop.
	ErrDispatcherClosed = errcode.Register(errcode.New(moduleCode, 6, "hook",
		"error.hook.dispatcher_closed", "dispatcher is closed"))

	// ErrPublisherNotAvailable is returned when mirroring is configured
	// but no record publisher was provided.
	ErrPublisherNotAvailable = errcode.Register(errcode.New(moduleCode, 7, "hook",
		"error.hook.publisher_not_available", "record publisher not available"))

	// ErrTopicRequired is returned when a mirror route has no topic.
	ErrTopicRequired = errcode.Register(errcode.New(moduleCode, 8, "hook",
		"error.hook.topic_required", "mirror route topic is required"))

	// ErrListenerPanic marks a recovered listener panic.
	ErrListenerPanic = errcode.Register(errcode.New(moduleCode, 9, "hook",
		"error.hook.listener_panic", "listener panicked"))
)
