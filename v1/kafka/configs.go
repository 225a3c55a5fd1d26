package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// PublishCommand describes one outbound write of one or more messages.
type PublishCommand struct {
	// Topic is the destination topic. Empty means the topic is set on the
	// writer or on each message.
	Topic string

	// Messages are written in a single WriteMessages call
	Messages []kafka.Message
}

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
