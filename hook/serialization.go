package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// RecordPublisher delivers mirrored hook records to an external topic.
// Decouples the hook package from the concrete broker client.
type RecordPublisher interface {
	// PublishJSON publishes a JSON message to the given topic.
	PublishJSON(ctx context.Context, topic string, key string, payload any) error
}

// Record is the wire envelope for a mirrored hook.
type Record struct {
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
	TraceID    string          `json:"trace_id,omitempty"`
	Decision   string          `json:"decision"`
	KickReason string          `json:"kick_reason,omitempty"`
}

// NewRecord serializes an event and its dispatch outcome.
func NewRecord(e Event, decision Decision, traceID string) (*Record, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s failed: %w", e.Kind(), err)
	}

	record := &Record{
		Kind:       e.Kind().String(),
		Payload:    payload,
		OccurredAt: time.Now(),
		TraceID:    traceID,
		Decision:   decision.String(),
	}
	if reason, ok := decision.KickReason(); ok {
		record.KickReason = reason
	}
	return record, nil
}

// traceIDFromContext prefers the OpenTelemetry span context, then the
// conventional "trace_id" key.
func traceIDFromContext(ctx context.Context) string {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	if val := ctx.Value("trace_id"); val != nil {
		if traceID, ok := val.(string); ok {
			return traceID
		}
	}
	return ""
}
