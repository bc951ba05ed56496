package banlist

import (
	"context"
	"time"

	"github.com/modring/go-modring-framework/hook"
)

// LoginGate rejects banned players during the login check. Register it
// at PriorityCritical so it answers before any plugin listener.
type LoginGate struct {
	snapshot *Snapshot
}

// NewLoginGate creates the login gate over a snapshot.
func NewLoginGate(snapshot *Snapshot) *LoginGate {
	return &LoginGate{snapshot: snapshot}
}

// OnLoginCheck kicks when the name or the address carries a ban.
func (g *LoginGate) OnLoginCheck(ctx context.Context, e *hook.LoginCheckEvent) (hook.Decision, error) {
	if reason, ok := g.snapshot.NameBanned(e.Name); ok {
		return hook.KickWith(reason), nil
	}
	if e.Address != "" {
		if reason, ok := g.snapshot.IPBanned(e.Address); ok {
			return hook.KickWith(reason), nil
		}
	}
	return hook.Allow(), nil
}

// Recorder persists moderator bans to the store. Register it at
// PriorityLow: it observes, it never cancels.
type Recorder struct {
	store     Store
	refresher *Refresher
}

// NewRecorder creates the ban recorder.
func NewRecorder(store Store, refresher *Refresher) *Recorder {
	return &Recorder{store: store, refresher: refresher}
}

// OnBan stores the name ban and refreshes the snapshot so the ban
// takes effect without waiting for the next scheduled reload.
func (r *Recorder) OnBan(ctx context.Context, e *hook.BanEvent) error {
	if err := r.store.BanName(ctx, e.Player.Name, e.Reason, 0); err != nil {
		return err
	}
	return r.refreshNow(ctx)
}

// OnIPBan stores the address ban.
func (r *Recorder) OnIPBan(ctx context.Context, e *hook.IPBanEvent) error {
	if e.Player.Address == "" {
		return nil
	}
	if err := r.store.BanIP(ctx, e.Player.Address, e.Reason, 0); err != nil {
		return err
	}
	return r.refreshNow(ctx)
}

func (r *Recorder) refreshNow(ctx context.Context) error {
	if r.refresher == nil {
		return nil
	}
	refreshCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.refresher.Refresh(refreshCtx)
}
