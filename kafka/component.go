package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
)

// Component provides the broker producer to the rest of the framework.
// Its PublishJSON method satisfies the hook package's RecordPublisher,
// so the component itself can be wired as the mirror sink.
type Component struct {
	mu       sync.RWMutex
	config   Config
	producer Producer
	logger   *logger.CtxZapLogger
}

// NewComponent creates the kafka component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentKafka
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{component.ComponentConfig, component.ComponentLogger}
}

// Init loads and validates configuration. The connection is made in
// Start.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	if err := loader.Unmarshal("kafka", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "kafka not configured, skipping")
		return nil
	}
	if len(c.config.Brokers) == 0 {
		c.logger.InfoCtx(ctx, "kafka brokers not configured, skipping")
		return nil
	}

	c.config.ApplyDefaults()
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("kafka config invalid: %w", err)
	}

	c.logger.DebugCtx(ctx, "kafka component initialized",
		zap.Strings("brokers", c.config.Brokers),
		zap.Bool("producer_enabled", c.config.Producer.Enabled))
	return nil
}

// Start connects the producer.
func (c *Component) Start(ctx context.Context) error {
	if len(c.config.Brokers) == 0 || !c.config.Producer.Enabled {
		return nil
	}

	saramaCfg, err := buildSaramaConfig(c.config)
	if err != nil {
		return err
	}

	producer, err := NewSyncProducer(c.config.Brokers, c.config.Producer, saramaCfg, c.logger.GetZapLogger())
	if err != nil {
		return fmt.Errorf("connect kafka failed: %w", err)
	}

	c.mu.Lock()
	c.producer = producer
	c.mu.Unlock()

	c.logger.InfoCtx(ctx, "kafka component started",
		zap.Strings("brokers", c.config.Brokers))
	return nil
}

// Stop closes the producer.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	producer := c.producer
	c.producer = nil
	c.mu.Unlock()

	if producer != nil {
		if err := producer.Close(); err != nil {
			return fmt.Errorf("close kafka producer failed: %w", err)
		}
		c.logger.InfoCtx(ctx, "kafka component stopped")
	}
	return nil
}

// GetProducer returns the connected producer; nil before Start.
func (c *Component) GetProducer() Producer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.producer
}

// SetProducer replaces the producer (used by tests).
func (c *Component) SetProducer(p Producer) {
	c.mu.Lock()
	c.producer = p
	c.mu.Unlock()
}

// PublishJSON marshals payload and produces it to topic.
func (c *Component) PublishJSON(ctx context.Context, topic string, key string, payload any) error {
	producer := c.GetProducer()
	if producer == nil {
		return fmt.Errorf("producer not available")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	_, err = producer.Send(ctx, &Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Headers: map[string]string{
			"content-type": "application/json",
		},
	})
	return err
}

// GetHealthChecker exposes the producer health check; nil when no
// brokers are configured.
func (c *Component) GetHealthChecker() component.HealthChecker {
	if len(c.config.Brokers) == 0 || !c.config.Producer.Enabled {
		return nil
	}
	return &healthChecker{component: c}
}

type healthChecker struct {
	component *Component
}

func (h *healthChecker) Name() string {
	return "kafka"
}

// Check fails while the producer has not connected.
func (h *healthChecker) Check(ctx context.Context) error {
	if h.component.GetProducer() == nil {
		return fmt.Errorf("kafka producer not connected")
	}
	return nil
}
