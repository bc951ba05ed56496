package hook

// Decision is a listener's verdict on an event. It replaces the
// boolean-as-cancellation and string-as-kick-reason conventions with one
// explicit value.
type Decision struct {
	canceled   bool
	kickReason string
}

// Allow lets the default action proceed and the chain continue.
func Allow() Decision {
	return Decision{}
}

// Cancel suppresses the default action. Listeners after the canceling
// one are not invoked.
func Cancel() Decision {
	return Decision{canceled: true}
}

// KickWith rejects a login with the given reason. Only meaningful for
// ClassFilter hooks; for other classes it behaves like Cancel.
func KickWith(reason string) Decision {
	return Decision{canceled: true, kickReason: reason}
}

// Canceled reports whether the default action was suppressed.
func (d Decision) Canceled() bool {
	return d.canceled
}

// KickReason returns the kick reason when one was set.
func (d Decision) KickReason() (string, bool) {
	if !d.canceled || d.kickReason == "" {
		return "", false
	}
	return d.kickReason, true
}

// String returns "allow", "cancel" or "kick".
func (d Decision) String() string {
	switch {
	case !d.canceled:
		return "allow"
	case d.kickReason != "":
		return "kick"
	default:
		return "cancel"
	}
}
