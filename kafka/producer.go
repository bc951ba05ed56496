package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Message is one message to produce.
type Message struct {
	// Topic is the destination topic.
	Topic string

	// Key is the message key (drives partitioning).
	Key []byte

	// Value is the message body.
	Value []byte

	// Headers are optional record headers.
	Headers map[string]string

	// Timestamp overrides the message timestamp when set.
	Timestamp time.Time
}

// ProducerResult is the broker's acknowledgment.
type ProducerResult struct {
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time
}

// Producer is the produce surface the rest of the framework uses.
type Producer interface {
	// Send produces a message and waits for the ack.
	Send(ctx context.Context, msg *Message) (*ProducerResult, error)

	// SendJSON marshals value and produces it.
	SendJSON(ctx context.Context, topic string, key string, value interface{}) (*ProducerResult, error)

	// Close shuts the producer down.
	Close() error
}

// SyncProducer wraps sarama.SyncProducer.
type SyncProducer struct {
	producer sarama.SyncProducer
	config   ProducerConfig
	logger   *zap.Logger
	mu       sync.RWMutex
	closed   bool
}

// NewSyncProducer connects a synchronous producer.
func NewSyncProducer(brokers []string, cfg ProducerConfig, saramaCfg *sarama.Config, logger *zap.Logger) (*SyncProducer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("create sync producer failed: %w", err)
	}

	return &SyncProducer{
		producer: producer,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Send produces a message and waits for the ack.
func (p *SyncProducer) Send(ctx context.Context, msg *Message) (*ProducerResult, error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, fmt.Errorf("producer is closed")
	}
	p.mu.RUnlock()

	if msg == nil {
		return nil, fmt.Errorf("message cannot be nil")
	}
	if msg.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	saramaMsg := &sarama.ProducerMessage{
		Topic: msg.Topic,
		Value: sarama.ByteEncoder(msg.Value),
	}

	if len(msg.Key) > 0 {
		saramaMsg.Key = sarama.ByteEncoder(msg.Key)
	}

	if !msg.Timestamp.IsZero() {
		saramaMsg.Timestamp = msg.Timestamp
	}

	if len(msg.Headers) > 0 {
		headers := make([]sarama.RecordHeader, 0, len(msg.Headers))
		for k, v := range msg.Headers {
			headers = append(headers, sarama.RecordHeader{
				Key:   []byte(k),
				Value: []byte(v),
			})
		}
		saramaMsg.Headers = headers
	}

	partition, offset, err := p.producer.SendMessage(saramaMsg)
	if err != nil {
		p.logger.Error("send message failed",
			zap.String("topic", msg.Topic),
			zap.Error(err))
		return nil, fmt.Errorf("send message failed: %w", err)
	}

	p.logger.Debug("message sent",
		zap.String("topic", msg.Topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))

	return &ProducerResult{
		Topic:     msg.Topic,
		Partition: partition,
		Offset:    offset,
		Timestamp: time.Now(),
	}, nil
}

// SendJSON marshals value and produces it with a content-type header.
func (p *SyncProducer) SendJSON(ctx context.Context, topic string, key string, value interface{}) (*ProducerResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal json failed: %w", err)
	}

	msg := &Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Headers: map[string]string{
			"content-type": "application/json",
		},
	}

	return p.Send(ctx, msg)
}

// Close shuts the producer down. Idempotent.
func (p *SyncProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close producer failed: %w", err)
	}

	p.logger.Debug("producer closed")
	return nil
}
