package banlist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "test:banlist"), mr
}

// ===== RedisStore tests =====

func TestRedisStore_BanName(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanName(ctx, "Mallory", "griefing", 0))

	reason, banned, err := store.NameReason(ctx, "mallory")
	require.NoError(t, err)
	assert.True(t, banned)
	assert.Equal(t, "griefing", reason)

	// Case-insensitive lookup.
	_, banned, err = store.NameReason(ctx, "MALLORY")
	require.NoError(t, err)
	assert.True(t, banned)

	_, banned, err = store.NameReason(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestRedisStore_BanIP(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanIP(ctx, "203.0.113.9", "proxy", 0))

	reason, banned, err := store.IPReason(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, banned)
	assert.Equal(t, "proxy", reason)
}

func TestRedisStore_Unban(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanName(ctx, "mallory", "griefing", 0))
	require.NoError(t, store.UnbanName(ctx, "mallory"))

	_, banned, err := store.NameReason(ctx, "mallory")
	require.NoError(t, err)
	assert.False(t, banned)

	// Unbanning an unknown name is a no-op.
	require.NoError(t, store.UnbanName(ctx, "nobody"))
	require.NoError(t, store.UnbanIP(ctx, "198.51.100.1"))
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanName(ctx, "mallory", "one day", 24*time.Hour))

	_, banned, err := store.NameReason(ctx, "mallory")
	require.NoError(t, err)
	assert.True(t, banned)

	mr.FastForward(25 * time.Hour)

	_, banned, err = store.NameReason(ctx, "mallory")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestRedisStore_Names(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanName(ctx, "mallory", "griefing", 0))
	require.NoError(t, store.BanName(ctx, "trudy", "cheating", 0))
	require.NoError(t, store.BanIP(ctx, "203.0.113.9", "proxy", 0))

	names, err := store.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"mallory": "griefing",
		"trudy":   "cheating",
	}, names)

	ips, err := store.IPs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"203.0.113.9": "proxy"}, ips)
}

func TestRedisStore_EmptyArgs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, store.BanName(ctx, "", "reason", 0))
	assert.Error(t, store.BanIP(ctx, "", "reason", 0))
}

// ===== Snapshot tests =====

func TestSnapshot_Lookup(t *testing.T) {
	s := NewSnapshot()
	s.Replace(map[string]string{"mallory": "griefing"}, map[string]string{"203.0.113.9": "proxy"})

	reason, ok := s.NameBanned("Mallory")
	require.True(t, ok)
	assert.Equal(t, "griefing", reason)

	reason, ok = s.IPBanned("203.0.113.9")
	require.True(t, ok)
	assert.Equal(t, "proxy", reason)

	_, ok = s.NameBanned("alice")
	assert.False(t, ok)
}

func TestSnapshot_Replace(t *testing.T) {
	s := NewSnapshot()
	assert.True(t, s.LoadedAt().IsZero())

	s.Replace(map[string]string{"a": "x"}, nil)
	names, ips := s.Size()
	assert.Equal(t, 1, names)
	assert.Equal(t, 0, ips)
	assert.False(t, s.LoadedAt().IsZero())

	s.Replace(nil, nil)
	names, ips = s.Size()
	assert.Equal(t, 0, names)
	assert.Equal(t, 0, ips)
}

// ===== Refresher tests =====

func TestRefresher_Refresh(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BanName(ctx, "mallory", "griefing", 0))

	snapshot := NewSnapshot()
	refresher := NewRefresher(store, snapshot)
	require.NoError(t, refresher.Refresh(ctx))

	reason, ok := snapshot.NameBanned("mallory")
	require.True(t, ok)
	assert.Equal(t, "griefing", reason)

	// An unban shows up after the next refresh.
	require.NoError(t, store.UnbanName(ctx, "mallory"))
	_, ok = snapshot.NameBanned("mallory")
	assert.True(t, ok, "stale until refreshed")

	require.NoError(t, refresher.Refresh(ctx))
	_, ok = snapshot.NameBanned("mallory")
	assert.False(t, ok)
}
