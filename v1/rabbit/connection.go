package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultHeartbeat is used when ConnectionConfig.Heartbeat is zero.
const DefaultHeartbeat = 2 * time.Second

// ConnectionConfig describes how to reach a RabbitMQ server.
type ConnectionConfig struct {
	Host     string `yaml:"host" envconfig:"RABBITMQ_HOST"`
	Port     int    `yaml:"port" envconfig:"RABBITMQ_PORT"`
	User     string `yaml:"user" envconfig:"RABBITMQ_USER"`
	Password string `yaml:"password" envconfig:"RABBITMQ_PASSWORD"`
	VHost    string `yaml:"vhost" envconfig:"RABBITMQ_VHOST"`

	// IsSSLEnabled switches to amqps
	IsSSLEnabled bool `yaml:"is_ssl_enabled" envconfig:"RABBITMQ_IS_SSL_ENABLED"`

	// CACertPath, ClientCertPath and ClientKeyPath are optional PEM files used with SSL
	CACertPath     string `yaml:"ca_cert_path" envconfig:"RABBITMQ_CA_CERT_PATH"`
	ClientCertPath string `yaml:"client_cert_path" envconfig:"RABBITMQ_CLIENT_CERT_PATH"`
	ClientKeyPath  string `yaml:"client_key_path" envconfig:"RABBITMQ_CLIENT_KEY_PATH"`
	ServerName     string `yaml:"server_name" envconfig:"RABBITMQ_SERVER_NAME"`

	// Heartbeat defaults to DefaultHeartbeat
	Heartbeat time.Duration `yaml:"heartbeat" envconfig:"RABBITMQ_HEARTBEAT"`

	// Prefetch is the channel QoS prefetch count; 0 means unlimited
	Prefetch int `yaml:"prefetch" envconfig:"RABBITMQ_PREFETCH"`
}

// URL returns the AMQP URI of cfg.
func (cfg ConnectionConfig) URL() string {
	scheme := "amqp"
	if cfg.IsSSLEnabled {
		scheme = "amqps"
	}

	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.VHost,
	}
	return u.String()
}

// Dial opens a connection described by cfg.
//
// Example:
//
//	conn, err := rabbit.Dial(rabbit.ConnectionConfig{
//	    Host: "localhost", Port: 5672, User: "guest", Password: "guest",
//	})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//	ch, err := rabbit.OpenChannel(conn, 10)
func Dial(cfg ConnectionConfig) (*amqp.Connection, error) {
	amqpCfg := amqp.Config{
		Heartbeat: cfg.Heartbeat,
		Vhost:     cfg.VHost,
	}
	if amqpCfg.Heartbeat == 0 {
		amqpCfg.Heartbeat = DefaultHeartbeat
	}

	if cfg.IsSSLEnabled {
		tlsConfig, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		amqpCfg.TLSClientConfig = tlsConfig
	}

	conn, err := amqp.DialConfig(cfg.URL(), amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return conn, nil
}

// OpenChannel opens a channel on conn with the given prefetch count.
func OpenChannel(conn *amqp.Connection, prefetch int) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("failed to set prefetch: %w", err)
		}
	}
	return ch, nil
}

func newTLSConfig(cfg ConnectionConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		ServerName: cfg.ServerName,
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
