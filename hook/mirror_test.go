package hook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== MirrorRouter tests =====

func TestMirrorRouter_ExactMatch(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"player:chat": {Topic: "game.chat"},
	})

	route := r.Match("player:chat")
	require.NotNil(t, route)
	assert.Equal(t, "game.chat", route.Topic)

	assert.Nil(t, r.Match("player:move"))
}

func TestMirrorRouter_SuffixWildcard(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"block:*": {Topic: "game.blocks"},
	})

	require.NotNil(t, r.Match("block:destroy"))
	require.NotNil(t, r.Match("block:complex_change"))
	assert.Nil(t, r.Match("player:chat"))
}

func TestMirrorRouter_CatchAll(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"*": {Topic: "game.all"},
	})

	for _, kind := range Kinds() {
		assert.NotNil(t, r.Match(kind.String()), kind.String())
	}
}

func TestMirrorRouter_ExactWinsOverWildcard(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"player:*":    {Topic: "game.players"},
		"player:chat": {Topic: "game.chat"},
		"*":           {Topic: "game.all"},
	})

	assert.Equal(t, "game.chat", r.Match("player:chat").Topic)
	assert.Equal(t, "game.players", r.Match("player:move").Topic)
	assert.Equal(t, "game.all", r.Match("mob:spawn").Topic)
}

func TestMirrorRouter_LongerPrefixWins(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"block:*":         {Topic: "game.blocks"},
		"block:complex_*": {Topic: "game.complex"},
	})

	assert.Equal(t, "game.complex", r.Match("block:complex_change").Topic)
	assert.Equal(t, "game.blocks", r.Match("block:destroy").Topic)
}

func TestMirrorRouter_MidSegmentTrailingWildcard(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"block:complex_*": {Topic: "game.complex"},
	})

	require.NotNil(t, r.Match("block:complex_change"))
	require.NotNil(t, r.Match("block:complex_send"))
	assert.Nil(t, r.Match("block:create"))
	assert.Nil(t, r.Match("player:chat"))
}

func TestMirrorRouter_SingleSegmentWildcard(t *testing.T) {
	r := NewMirrorRouter()
	r.LoadRoutes(map[string]MirrorRoute{
		"*:spawn": {Topic: "game.spawns"},
	})

	require.NotNil(t, r.Match("mob:spawn"))
	assert.Nil(t, r.Match("player:chat"))
}

func TestMirrorRouter_HasRoutes(t *testing.T) {
	r := NewMirrorRouter()
	assert.False(t, r.HasRoutes())
	assert.Equal(t, 0, r.RouteCount())

	r.LoadRoutes(map[string]MirrorRoute{"*": {Topic: "t"}})
	assert.True(t, r.HasRoutes())
	assert.Equal(t, 1, r.RouteCount())
}

// ===== Record tests =====

func TestNewRecord(t *testing.T) {
	e := NewChatEvent(testPlayer("alice"), "hello")
	record, err := NewRecord(e, KickWith("banned"), "trace-123")
	require.NoError(t, err)

	assert.Equal(t, "player:chat", record.Kind)
	assert.Equal(t, "kick", record.Decision)
	assert.Equal(t, "banned", record.KickReason)
	assert.Equal(t, "trace-123", record.TraceID)
	assert.False(t, record.OccurredAt.IsZero())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(record.Payload, &payload))
	assert.Equal(t, "hello", payload["message"])
}

func TestNewRecord_AllowOmitsKickReason(t *testing.T) {
	record, err := NewRecord(NewChatEvent(testPlayer("alice"), "hi"), Allow(), "")
	require.NoError(t, err)

	assert.Equal(t, "allow", record.Decision)
	assert.Empty(t, record.KickReason)
	assert.Empty(t, record.TraceID)
}

func TestTraceIDFromContext_Key(t *testing.T) {
	ctx := context.WithValue(context.Background(), "trace_id", "abc")
	assert.Equal(t, "abc", traceIDFromContext(ctx))
	assert.Empty(t, traceIDFromContext(context.Background()))
}
