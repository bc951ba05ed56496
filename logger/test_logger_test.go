package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTestCtxLogger_Record(t *testing.T) {
	l := NewTestCtxLogger()
	ctx := context.Background()

	l.InfoCtx(ctx, "plugin enabled", zap.String("plugin", "grief-guard"))
	l.ErrorCtx(ctx, "listener failed", zap.String("kind", "player:chat"))

	assert.True(t, l.HasLog("INFO", "plugin enabled"))
	assert.True(t, l.HasLog("ERROR", "listener failed"))
	assert.False(t, l.HasLog("WARN", "plugin enabled"))
	assert.True(t, l.HasLogWithField("INFO", "plugin enabled", "plugin", "grief-guard"))
	assert.False(t, l.HasLogWithField("INFO", "plugin enabled", "plugin", "worldedit"))
}

func TestTestCtxLogger_CountAndClear(t *testing.T) {
	l := NewTestCtxLogger()
	ctx := context.Background()

	l.DebugCtx(ctx, "a")
	l.DebugCtx(ctx, "b")
	l.WarnCtx(ctx, "c")

	assert.Equal(t, 2, l.CountLogs("DEBUG"))
	assert.Equal(t, 1, l.CountLogs("WARN"))
	assert.Len(t, l.Logs(), 3)

	l.Clear()
	assert.Empty(t, l.Logs())
}

func TestTestCtxLogger_TraceID(t *testing.T) {
	l := NewTestCtxLogger()
	ctx := context.WithValue(context.Background(), "trace_id", "t-1")

	l.InfoCtx(ctx, "joined")
	logs := l.Logs()
	assert.Equal(t, "t-1", logs[0].TraceID)
}
