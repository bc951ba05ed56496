package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestCtxLogger records log entries in memory so unit tests can assert
// on them.
type TestCtxLogger struct {
	mu   sync.RWMutex
	logs []LogEntry
}

// LogEntry is one recorded log line.
type LogEntry struct {
	Level   string
	Message string
	TraceID string
	Fields  map[string]interface{}
}

// NewTestCtxLogger creates an in-memory test logger.
//
//	testLogger := logger.NewTestCtxLogger()
//	d := hook.NewDispatcher(reg, hook.WithLogger(testLogger))
//	...
//	assert.True(t, testLogger.HasLog("ERROR", "listener failed"))
func NewTestCtxLogger() *TestCtxLogger {
	return &TestCtxLogger{logs: make([]LogEntry, 0)}
}

func (t *TestCtxLogger) record(ctx context.Context, level, msg string, fields []zap.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = append(t.logs, LogEntry{
		Level:   level,
		Message: msg,
		TraceID: extractTraceIDFromContext(ctx, nil),
		Fields:  extractFieldsMap(fields),
	})
}

// DebugCtx records a debug entry.
func (t *TestCtxLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "DEBUG", msg, fields)
}

// InfoCtx records an info entry.
func (t *TestCtxLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "INFO", msg, fields)
}

// WarnCtx records a warn entry.
func (t *TestCtxLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "WARN", msg, fields)
}

// ErrorCtx records an error entry.
func (t *TestCtxLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "ERROR", msg, fields)
}

// HasLog reports whether an entry with the level and message exists.
func (t *TestCtxLogger) HasLog(level, message string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, log := range t.logs {
		if log.Level == level && log.Message == message {
			return true
		}
	}
	return false
}

// HasLogWithField reports whether an entry exists with the given level,
// message and field value.
func (t *TestCtxLogger) HasLogWithField(level, message, fieldKey string, fieldValue interface{}) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, log := range t.logs {
		if log.Level == level && log.Message == message {
			if val, exists := log.Fields[fieldKey]; exists && val == fieldValue {
				return true
			}
		}
	}
	return false
}

// CountLogs counts entries at the given level.
func (t *TestCtxLogger) CountLogs(level string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	count := 0
	for _, log := range t.logs {
		if log.Level == level {
			count++
		}
	}
	return count
}

// Logs returns a copy of all recorded entries.
func (t *TestCtxLogger) Logs() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	logs := make([]LogEntry, len(t.logs))
	copy(logs, t.logs)
	return logs
}

// Clear removes all recorded entries.
func (t *TestCtxLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = make([]LogEntry, 0)
}

func extractFieldsMap(fields []zap.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	result := make(map[string]interface{}, len(enc.Fields))
	for k, v := range enc.Fields {
		result[k] = v
	}
	return result
}
