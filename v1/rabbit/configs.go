package rabbit

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchangeName replaces the empty name of the AMQP default exchange
// in destination labels.
const DefaultExchangeName = "default"

// PublishCommand describes one outbound publish.
type PublishCommand struct {
	// Exchange is the exchange to publish to; empty means the default exchange
	Exchange string

	// RoutingKey is the routing key, or the queue name for the default exchange
	RoutingKey string

	// Mandatory asks the broker to return unroutable messages
	Mandatory bool

	// Immediate asks the broker to return messages with no ready consumer
	Immediate bool

	// Publishing is the message itself
	Publishing amqp.Publishing
}

//go:generate mockgen -source=configs.go -destination=mock_logger_test.go -package=rabbit

// Logger is the subset of logger.Logger used by this package.
// It provides context-aware structured logging with optional error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
