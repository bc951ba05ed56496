package hook

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modring/go-modring-framework/logger"
)

func newTestLogger() *logger.TestCtxLogger {
	return logger.NewTestCtxLogger()
}

func testPlayer(name string) Player {
	return Player{Name: name, Address: "203.0.113.7"}
}

func newTestDispatcher(t *testing.T, opts ...DispatcherOption) *Dispatcher {
	t.Helper()
	d := NewDispatcher(NewRegistry(), opts...)
	t.Cleanup(d.Close)
	return d
}

// ===== Basic dispatch =====

func TestDispatcher_Dispatch_NoListeners(t *testing.T) {
	d := newTestDispatcher(t)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hello"))
	require.NoError(t, err)
	assert.False(t, decision.Canceled())
}

func TestDispatcher_Dispatch_NilEvent(t *testing.T) {
	d := newTestDispatcher(t)

	decision, err := d.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, decision.Canceled())
}

func TestDispatcher_Dispatch_AfterClose(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	d.Close()

	_, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

// ===== Priority ordering =====

func TestDispatcher_Dispatch_PriorityOrder(t *testing.T) {
	d := newTestDispatcher(t)

	var order []string
	sub := func(name string, p Priority) {
		_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
			order = append(order, name)
			return Allow(), nil
		}, WithPriority(p))
		require.NoError(t, err)
	}

	sub("low", PriorityLow)
	sub("critical", PriorityCritical)
	sub("medium-1", PriorityMedium)
	sub("high", PriorityHigh)
	sub("medium-2", PriorityMedium)

	_, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)

	assert.Equal(t, []string{"critical", "high", "medium-1", "medium-2", "low"}, order)
}

// ===== Cancelable short-circuit =====

func TestDispatcher_Dispatch_CancelShortCircuits(t *testing.T) {
	d := newTestDispatcher(t)

	afterRan := false
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		return Cancel(), nil
	}, WithPriority(PriorityHigh))
	require.NoError(t, err)
	_, err = d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		afterRan = true
		return Allow(), nil
	}, WithPriority(PriorityLow))
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)

	assert.True(t, decision.Canceled())
	assert.False(t, afterRan, "listener after the canceling one must not run")
}

// Chat moderation example: a profanity filter cancels the message
// before lower-priority loggers see it.
func TestDispatcher_Dispatch_ChatModeration(t *testing.T) {
	d := newTestDispatcher(t)

	var logged []string
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		if strings.Contains(e.(*ChatEvent).Message, "spam") {
			return Cancel(), nil
		}
		return Allow(), nil
	}, WithPriority(PriorityMedium))
	require.NoError(t, err)
	_, err = d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		logged = append(logged, e.(*ChatEvent).Message)
		return Allow(), nil
	}, WithPriority(PriorityLow))
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "buy spam now"))
	require.NoError(t, err)
	assert.True(t, decision.Canceled())
	assert.Empty(t, logged)

	decision, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hello all"))
	require.NoError(t, err)
	assert.False(t, decision.Canceled())
	assert.Equal(t, []string{"hello all"}, logged)
}

// ===== Notify class =====

func TestDispatcher_Dispatch_NotifyRunsAll(t *testing.T) {
	d := newTestDispatcher(t)

	calls := 0
	for i := 0; i < 3; i++ {
		_, err := d.Registry().Subscribe(KindPlayerMove, func(ctx context.Context, e Event) (Decision, error) {
			calls++
			// A cancel decision on a notify hook is ignored.
			return Cancel(), nil
		})
		require.NoError(t, err)
	}

	decision, err := d.Dispatch(context.Background(),
		NewPlayerMoveEvent(testPlayer("alice"), Location{X: 0}, Location{X: 1}))
	require.NoError(t, err)

	assert.False(t, decision.Canceled())
	assert.Equal(t, 3, calls)
}

// ===== Filter class =====

type banCheck struct {
	banned map[string]string
}

func (b *banCheck) OnLoginCheck(ctx context.Context, e *LoginCheckEvent) (Decision, error) {
	if reason, ok := b.banned[e.Name]; ok {
		return KickWith(reason), nil
	}
	return Allow(), nil
}

func TestDispatcher_Dispatch_LoginCheckKick(t *testing.T) {
	d := newTestDispatcher(t)

	require.NoError(t, d.Registry().Register(
		&banCheck{banned: map[string]string{"mallory": "banned"}}, PriorityCritical))

	laterRan := false
	_, err := d.Registry().Subscribe(KindLoginCheck, func(ctx context.Context, e Event) (Decision, error) {
		laterRan = true
		return Allow(), nil
	}, WithPriority(PriorityMedium))
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewLoginCheckEvent("mallory", "203.0.113.9"))
	require.NoError(t, err)

	assert.True(t, decision.Canceled())
	reason, ok := decision.KickReason()
	require.True(t, ok)
	assert.Equal(t, "banned", reason)
	assert.False(t, laterRan, "filter short-circuits on the first kick")

	decision, err = d.Dispatch(context.Background(), NewLoginCheckEvent("alice", "203.0.113.9"))
	require.NoError(t, err)
	assert.False(t, decision.Canceled())
	assert.True(t, laterRan)
}

func TestDispatcher_DispatchLoginCheck(t *testing.T) {
	d := newTestDispatcher(t)

	require.NoError(t, d.Registry().Register(
		&banCheck{banned: map[string]string{"mallory": "banned for griefing"}}, PriorityCritical))

	reason, kicked, err := d.DispatchLoginCheck(context.Background(), "mallory", "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, kicked)
	assert.Equal(t, "banned for griefing", reason)

	_, kicked, err = d.DispatchLoginCheck(context.Background(), "alice", "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, kicked)
}

// ===== Failure isolation =====

func TestDispatcher_Dispatch_ListenerErrorIsIsolated(t *testing.T) {
	log := newTestLogger()
	d := newTestDispatcher(t, WithLogger(log))

	afterRan := false
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		return Allow(), errors.New("boom")
	}, WithPriority(PriorityHigh))
	require.NoError(t, err)
	_, err = d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		afterRan = true
		return Allow(), nil
	}, WithPriority(PriorityLow))
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)

	assert.False(t, decision.Canceled(), "a failing listener never cancels the event")
	assert.True(t, afterRan)
	assert.True(t, log.HasLog("ERROR", "listener failed"))
}

func TestDispatcher_Dispatch_ListenerPanicIsIsolated(t *testing.T) {
	log := newTestLogger()
	d := newTestDispatcher(t, WithLogger(log))

	afterRan := false
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		panic("broken plugin")
	}, WithPriority(PriorityHigh))
	require.NoError(t, err)
	_, err = d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		afterRan = true
		return Allow(), nil
	}, WithPriority(PriorityLow))
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)

	assert.False(t, decision.Canceled())
	assert.True(t, afterRan)
	assert.True(t, log.HasLog("ERROR", "listener panicked"))
}

// A cancel returned together with an error does not count.
func TestDispatcher_Dispatch_ErrorDiscardsDecision(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		return Cancel(), errors.New("boom")
	})
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	assert.False(t, decision.Canceled())
}

// ===== Snapshot isolation =====

func TestDispatcher_Dispatch_SnapshotIsolation(t *testing.T) {
	d := newTestDispatcher(t)

	lateCalls := 0
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		// Registered mid-dispatch: must not see the current event.
		_, subErr := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
			lateCalls++
			return Allow(), nil
		}, WithPriority(PriorityLow))
		require.NoError(t, subErr)
		return Allow(), nil
	}, WithPriority(PriorityCritical))
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "first"))
	require.NoError(t, err)
	assert.Equal(t, 0, lateCalls)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "second"))
	require.NoError(t, err)
	assert.Equal(t, 1, lateCalls)
}

func TestDispatcher_Dispatch_UnregisterDuringDispatch(t *testing.T) {
	d := newTestDispatcher(t)

	l := &chatListener{decision: Allow()}
	require.NoError(t, d.Registry().Register(l, PriorityLow))

	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		// The snapshot was taken before; l still runs this dispatch.
		d.Registry().Unregister(l)
		return Allow(), nil
	}, WithPriority(PriorityCritical))
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	assert.Equal(t, 1, l.calls)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	assert.Equal(t, 1, l.calls)
}

// ===== Re-entrant dispatch =====

func TestDispatcher_Dispatch_Reentrant(t *testing.T) {
	d := newTestDispatcher(t)

	var order []string
	_, err := d.Registry().Subscribe(KindCommand, func(ctx context.Context, e Event) (Decision, error) {
		order = append(order, "command")
		// A command handler that broadcasts a chat message.
		_, dispatchErr := d.Dispatch(ctx, NewChatEvent(testPlayer("server"), "announcement"))
		require.NoError(t, dispatchErr)
		order = append(order, "command-done")
		return Allow(), nil
	})
	require.NoError(t, err)
	_, err = d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		order = append(order, "chat")
		return Allow(), nil
	})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(),
		NewCommandEvent(testPlayer("alice"), []string{"/broadcast"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"command", "chat", "command-done"}, order)
}

// ===== Interceptors =====

func TestDispatcher_Use_InterceptorOrder(t *testing.T) {
	d := newTestDispatcher(t)

	var order []string
	d.Use(func(ctx context.Context, e Event, next Next) (Decision, error) {
		order = append(order, "outer-before")
		decision, err := next(ctx, e)
		order = append(order, "outer-after")
		return decision, err
	})
	d.Use(func(ctx context.Context, e Event, next Next) (Decision, error) {
		order = append(order, "inner-before")
		decision, err := next(ctx, e)
		order = append(order, "inner-after")
		return decision, err
	})

	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		order = append(order, "listener")
		return Allow(), nil
	})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"outer-before", "inner-before", "listener", "inner-after", "outer-after",
	}, order)
}

func TestDispatcher_Use_InterceptorShortCircuit(t *testing.T) {
	d := newTestDispatcher(t)

	d.Use(func(ctx context.Context, e Event, next Next) (Decision, error) {
		return Cancel(), nil
	})

	ran := false
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		ran = true
		return Allow(), nil
	})
	require.NoError(t, err)

	decision, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	assert.True(t, decision.Canceled())
	assert.False(t, ran)
}

// ===== Concurrency =====

func TestDispatcher_Dispatch_Concurrent(t *testing.T) {
	d := newTestDispatcher(t)

	var mu sync.Mutex
	count := 0
	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		mu.Lock()
		count++
		mu.Unlock()
		return Allow(), nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dispatchErr := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
			assert.NoError(t, dispatchErr)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}

// ===== Mirroring =====

type capturePublisher struct {
	mu      sync.Mutex
	records []*Record
	topics  []string
	done    chan struct{}
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{done: make(chan struct{}, 16)}
}

func (p *capturePublisher) PublishJSON(ctx context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	p.records = append(p.records, payload.(*Record))
	p.topics = append(p.topics, topic)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *capturePublisher) wait(t *testing.T) {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("mirror publish did not happen")
	}
}

func TestDispatcher_Mirror_MatchedRoute(t *testing.T) {
	pub := newCapturePublisher()
	router := NewMirrorRouter()
	router.LoadRoutes(map[string]MirrorRoute{
		"player:chat": {Topic: "game.chat"},
	})

	d := newTestDispatcher(t, WithPublisher(pub), WithMirrorRouter(router))

	_, err := d.Registry().Subscribe(KindChat, func(ctx context.Context, e Event) (Decision, error) {
		return Cancel(), nil
	})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	pub.wait(t)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.records, 1)
	assert.Equal(t, "game.chat", pub.topics[0])
	assert.Equal(t, "player:chat", pub.records[0].Kind)
	assert.Equal(t, "cancel", pub.records[0].Decision)
	assert.NotEmpty(t, pub.records[0].Payload)
}

func TestDispatcher_Mirror_UnmatchedKind(t *testing.T) {
	pub := newCapturePublisher()
	router := NewMirrorRouter()
	router.LoadRoutes(map[string]MirrorRoute{
		"player:chat": {Topic: "game.chat"},
	})

	d := newTestDispatcher(t, WithPublisher(pub), WithMirrorRouter(router))

	_, err := d.Dispatch(context.Background(),
		NewPlayerMoveEvent(testPlayer("alice"), Location{}, Location{X: 1}))
	require.NoError(t, err)

	select {
	case <-pub.done:
		t.Fatal("unmatched kind must not be mirrored")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatcher_Mirror_NoPublisher(t *testing.T) {
	log := newTestLogger()
	router := NewMirrorRouter()
	router.LoadRoutes(map[string]MirrorRoute{"*": {Topic: "game.all"}})

	d := newTestDispatcher(t, WithLogger(log), WithMirrorRouter(router))

	// Dispatch still succeeds, the gap is only logged.
	_, err := d.Dispatch(context.Background(), NewChatEvent(testPlayer("alice"), "hi"))
	require.NoError(t, err)
	assert.True(t, log.HasLog("WARN", "mirror route matched but no publisher configured"))
}
