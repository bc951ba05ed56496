package kafka

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// Config holds broker connection settings. Only a producer is wired:
// the framework publishes hook records, it never consumes them.
type Config struct {
	// Brokers is the Kafka cluster address list.
	Brokers []string `mapstructure:"brokers"`

	// Version is the Kafka protocol version (e.g. "3.8.0").
	Version string `mapstructure:"version"`

	// ClientID identifies this client to the brokers.
	ClientID string `mapstructure:"client_id"`

	// Producer configuration.
	Producer ProducerConfig `mapstructure:"producer"`

	// SASL authentication (optional).
	SASL *SASLConfig `mapstructure:"sasl"`

	// TLS settings (optional).
	TLS *TLSConfig `mapstructure:"tls"`
}

// ProducerConfig holds producer tuning.
type ProducerConfig struct {
	// Enabled toggles the producer.
	Enabled bool `mapstructure:"enabled"`

	// RequiredAcks: 0=NoResponse, 1=WaitForLocal, -1=WaitForAll.
	RequiredAcks int `mapstructure:"required_acks"`

	// Timeout for a produce request.
	Timeout time.Duration `mapstructure:"timeout"`

	// RetryMax is the maximum number of send retries.
	RetryMax int `mapstructure:"retry_max"`

	// RetryBackoff is the wait between retries.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`

	// MaxMessageBytes caps a single message.
	MaxMessageBytes int `mapstructure:"max_message_bytes"`

	// Compression: none, gzip, snappy, lz4, zstd.
	Compression string `mapstructure:"compression"`

	// Idempotent enables the idempotent producer.
	Idempotent bool `mapstructure:"idempotent"`
}

// SASLConfig holds SASL authentication settings.
type SASLConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Mechanism: PLAIN, SCRAM-SHA-256, SCRAM-SHA-512.
	Mechanism string `mapstructure:"mechanism"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// TLSConfig holds TLS settings.
type TLSConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CertFile           string `mapstructure:"cert_file"`
	KeyFile            string `mapstructure:"key_file"`
	CAFile             string `mapstructure:"ca_file"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("brokers cannot be empty")
	}
	for _, broker := range c.Brokers {
		if broker == "" {
			return fmt.Errorf("broker address cannot be empty")
		}
	}

	if c.Producer.Enabled {
		if err := c.Producer.Validate(); err != nil {
			return fmt.Errorf("producer config invalid: %w", err)
		}
	}

	if c.SASL != nil && c.SASL.Enabled {
		if err := c.SASL.Validate(); err != nil {
			return fmt.Errorf("sasl config invalid: %w", err)
		}
	}

	return nil
}

// Validate checks the producer configuration.
func (c *ProducerConfig) Validate() error {
	if c.RequiredAcks < -1 || c.RequiredAcks > 1 {
		return fmt.Errorf("required_acks must be -1, 0, or 1, got: %d", c.RequiredAcks)
	}

	if c.MaxMessageBytes < 0 {
		return fmt.Errorf("max_message_bytes must be >= 0, got: %d", c.MaxMessageBytes)
	}

	validCompressions := map[string]bool{
		"":       true,
		"none":   true,
		"gzip":   true,
		"snappy": true,
		"lz4":    true,
		"zstd":   true,
	}
	if !validCompressions[c.Compression] {
		return fmt.Errorf("invalid compression: %s", c.Compression)
	}

	return nil
}

// Validate checks the SASL configuration.
func (c *SASLConfig) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	validMechanisms := map[string]bool{
		"PLAIN":         true,
		"SCRAM-SHA-256": true,
		"SCRAM-SHA-512": true,
	}
	if !validMechanisms[c.Mechanism] {
		return fmt.Errorf("invalid mechanism: %s", c.Mechanism)
	}

	return nil
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "3.8.0"
	}
	if c.ClientID == "" {
		c.ClientID = "modring-kafka-client"
	}
	c.Producer.ApplyDefaults()
}

// ApplyDefaults fills zero-valued producer fields.
func (c *ProducerConfig) ApplyDefaults() {
	if c.RequiredAcks == 0 && !c.Idempotent {
		c.RequiredAcks = 1 // WaitForLocal
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryMax == 0 {
		c.RetryMax = 3
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = 100 * time.Millisecond
	}
	if c.MaxMessageBytes == 0 {
		c.MaxMessageBytes = 1048576 // 1MB
	}
	if c.Compression == "" {
		c.Compression = "none"
	}
}

// buildSaramaConfig translates Config into a sarama.Config.
func buildSaramaConfig(cfg Config) (*sarama.Config, error) {
	saramaCfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version failed: %w", err)
	}
	saramaCfg.Version = version
	saramaCfg.ClientID = cfg.ClientID

	if cfg.Producer.Enabled {
		saramaCfg.Producer.Return.Successes = true
		saramaCfg.Producer.Return.Errors = true

		switch cfg.Producer.RequiredAcks {
		case 0:
			saramaCfg.Producer.RequiredAcks = sarama.NoResponse
		case 1:
			saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal
		case -1:
			saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
		}

		saramaCfg.Producer.Timeout = cfg.Producer.Timeout
		saramaCfg.Producer.Retry.Max = cfg.Producer.RetryMax
		saramaCfg.Producer.Retry.Backoff = cfg.Producer.RetryBackoff
		saramaCfg.Producer.MaxMessageBytes = cfg.Producer.MaxMessageBytes
		saramaCfg.Producer.Idempotent = cfg.Producer.Idempotent
		if cfg.Producer.Idempotent {
			saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
			saramaCfg.Net.MaxOpenRequests = 1
		}

		switch cfg.Producer.Compression {
		case "gzip":
			saramaCfg.Producer.Compression = sarama.CompressionGZIP
		case "snappy":
			saramaCfg.Producer.Compression = sarama.CompressionSnappy
		case "lz4":
			saramaCfg.Producer.Compression = sarama.CompressionLZ4
		case "zstd":
			saramaCfg.Producer.Compression = sarama.CompressionZSTD
		default:
			saramaCfg.Producer.Compression = sarama.CompressionNone
		}
	}

	if cfg.SASL != nil && cfg.SASL.Enabled {
		saramaCfg.Net.SASL.Enable = true
		saramaCfg.Net.SASL.User = cfg.SASL.Username
		saramaCfg.Net.SASL.Password = cfg.SASL.Password

		switch cfg.SASL.Mechanism {
		case "SCRAM-SHA-256":
			saramaCfg.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
			saramaCfg.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
				return &XDGSCRAMClient{HashGeneratorFcn: SHA256}
			}
		case "SCRAM-SHA-512":
			saramaCfg.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
			saramaCfg.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
				return &XDGSCRAMClient{HashGeneratorFcn: SHA512}
			}
		default:
			saramaCfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		}
	}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		saramaCfg.Net.TLS.Enable = true
		saramaCfg.Net.TLS.Config = &tls.Config{
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		}
	}

	return saramaCfg, nil
}
