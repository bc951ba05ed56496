package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modring/go-modring-framework/component"
)

// fakeProducer records sent messages.
type fakeProducer struct {
	sent []*Message
	err  error
}

func (f *fakeProducer) Send(ctx context.Context, msg *Message) (*ProducerResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, msg)
	return &ProducerResult{Topic: msg.Topic}, nil
}

func (f *fakeProducer) SendJSON(ctx context.Context, topic, key string, value interface{}) (*ProducerResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return f.Send(ctx, &Message{Topic: topic, Key: []byte(key), Value: data})
}

func (f *fakeProducer) Close() error { return nil }

// emptyLoader has no kafka section.
type emptyLoader struct{}

func (emptyLoader) Get(key string) interface{}                { return nil }
func (emptyLoader) Unmarshal(key string, v interface{}) error { return nil }
func (emptyLoader) GetString(key string) string               { return "" }
func (emptyLoader) GetInt(key string) int                     { return 0 }
func (emptyLoader) GetBool(key string) bool                   { return false }
func (emptyLoader) IsSet(key string) bool                     { return false }

// ===== Component tests =====

func TestComponent_Name(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, component.ComponentKafka, c.Name())
}

func TestComponent_DependsOn(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, []string{component.ComponentConfig, component.ComponentLogger}, c.DependsOn())
}

func TestComponent_Init_NoBrokers(t *testing.T) {
	c := NewComponent()
	require.NoError(t, c.Init(context.Background(), emptyLoader{}))
	// No brokers configured: Start and Stop are no-ops.
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
	assert.Nil(t, c.GetProducer())
}

func TestComponent_PublishJSON(t *testing.T) {
	c := NewComponent()
	require.NoError(t, c.Init(context.Background(), emptyLoader{}))

	fake := &fakeProducer{}
	c.SetProducer(fake)

	err := c.PublishJSON(context.Background(), "game.chat", "player:chat",
		map[string]string{"message": "hello"})
	require.NoError(t, err)

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "game.chat", fake.sent[0].Topic)
	assert.Equal(t, []byte("player:chat"), fake.sent[0].Key)
	assert.Equal(t, "application/json", fake.sent[0].Headers["content-type"])

	var payload map[string]string
	require.NoError(t, json.Unmarshal(fake.sent[0].Value, &payload))
	assert.Equal(t, "hello", payload["message"])
}

func TestComponent_PublishJSON_NoProducer(t *testing.T) {
	c := NewComponent()
	err := c.PublishJSON(context.Background(), "topic", "key", "value")
	assert.Error(t, err)
}

func TestComponent_HealthChecker(t *testing.T) {
	c := NewComponent()

	assert.Nil(t, c.GetHealthChecker(), "unconfigured component exposes no checker")

	c.config = Config{
		Brokers:  []string{"localhost:9092"},
		Producer: ProducerConfig{Enabled: true},
	}
	hc := c.GetHealthChecker()
	require.NotNil(t, hc)
	assert.Equal(t, "kafka", hc.Name())
	assert.Error(t, hc.Check(context.Background()), "not connected yet")

	c.SetProducer(&fakeProducer{})
	assert.NoError(t, hc.Check(context.Background()))
}
