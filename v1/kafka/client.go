package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// ClientConfig describes how to reach a Kafka cluster and which topic to
// read or write.
type ClientConfig struct {
	// Brokers is the list of bootstrap addresses, e.g. ["localhost:9092"]
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic is the topic read by NewReader and the default topic of NewWriter
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// GroupID enables consumer group mode for NewReader
	GroupID string `yaml:"group_id" envconfig:"KAFKA_GROUP_ID"`

	// MinBytes and MaxBytes bound the size of a fetch request
	MinBytes int `yaml:"min_bytes" envconfig:"KAFKA_MIN_BYTES"`
	MaxBytes int `yaml:"max_bytes" envconfig:"KAFKA_MAX_BYTES"`

	// MaxWait bounds how long a fetch waits for MinBytes
	MaxWait time.Duration `yaml:"max_wait" envconfig:"KAFKA_MAX_WAIT"`

	// RequiredAcks is 0 (none), 1 (leader) or -1 (all in-sync replicas)
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	// MaxAttempts bounds write retries
	MaxAttempts int `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// WriteTimeout bounds a single write
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// CompressionCodec is one of gzip, snappy, lz4, zstd or empty for none
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	TLS  TLSConfig  `yaml:"tls"`
	SASL SASLConfig `yaml:"sasl"`
}

// TLSConfig enables TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`
	CACertPath         string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`
	ClientCertPath     string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`
	ClientKeyPath      string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig enables SASL authentication.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

// ErrNoBrokers is returned when ClientConfig.Brokers is empty.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// NewWriter creates a writer for cfg. Its errors are reported through
// logger, which may be nil. The writer connects lazily on the first write.
//
// Example:
//
//	w, err := kafka.NewWriter(kafka.ClientConfig{
//	    Brokers: []string{"localhost:9092"},
//	    Topic:   "orders",
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	pub := kafka.NewPublisher(w, mw)
func NewWriter(cfg ClientConfig, logger Logger) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	tlsConfig, mechanism, err := security(cfg)
	if err != nil {
		return nil, err
	}

	codec, err := compression(cfg.CompressionCodec)
	if err != nil {
		return nil, err
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:  codec,
		ErrorLogger:  ErrorLogger(context.Background(), logger),
		Transport: &kafka.Transport{
			TLS:  tlsConfig,
			SASL: mechanism,
		},
	}, nil
}

// NewReaderConfig builds and validates the reader configuration for cfg.
// Commits are explicit; Consumer.Run commits after each handled message.
func NewReaderConfig(cfg ClientConfig, logger Logger) (kafka.ReaderConfig, error) {
	if len(cfg.Brokers) == 0 {
		return kafka.ReaderConfig{}, ErrNoBrokers
	}

	tlsConfig, mechanism, err := security(cfg)
	if err != nil {
		return kafka.ReaderConfig{}, err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		ErrorLogger: ErrorLogger(context.Background(), logger),
		Dialer: &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			TLS:           tlsConfig,
			SASLMechanism: mechanism,
		},
	}
	if err := readerConfig.Validate(); err != nil {
		return kafka.ReaderConfig{}, fmt.Errorf("invalid reader config: %w", err)
	}
	return readerConfig, nil
}

// NewReader creates a reader for cfg.
func NewReader(cfg ClientConfig, logger Logger) (*kafka.Reader, error) {
	readerConfig, err := NewReaderConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	return kafka.NewReader(readerConfig), nil
}

func security(cfg ClientConfig) (*tls.Config, sasl.Mechanism, error) {
	var (
		tlsConfig *tls.Config
		mechanism sasl.Mechanism
		err       error
	)

	if cfg.TLS.Enabled {
		if tlsConfig, err = newTLSConfig(cfg.TLS); err != nil {
			return nil, nil, err
		}
	}
	if cfg.SASL.Enabled {
		if mechanism, err = newSASLMechanism(cfg.SASL); err != nil {
			return nil, nil, err
		}
	}
	return tlsConfig, mechanism, nil
}

func newTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert %s", cfg.CACertPath)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func newSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %q", cfg.Mechanism)
	}
}

func compression(codec string) (compress.Compression, error) {
	switch codec {
	case "":
		return 0, nil
	case "gzip":
		return compress.Gzip, nil
	case "snappy":
		return compress.Snappy, nil
	case "lz4":
		return compress.Lz4, nil
	case "zstd":
		return compress.Zstd, nil
	default:
		return 0, fmt.Errorf("unsupported compression codec: %q", codec)
	}
}
