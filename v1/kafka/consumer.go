package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Consumer reads messages from a MessageFetcher and runs them through the
// metrics middleware. A message is committed only when its handler succeeds.
type Consumer struct {
	r          MessageFetcher
	middleware *Middleware
	logger     Logger
	tracer     *tracer.Tracer
}

// NewConsumer creates a Consumer reading from r, typically a *kafka.Reader
// configured with a GroupID.
func NewConsumer(r MessageFetcher, mw *Middleware) *Consumer {
	return &Consumer{
		r:          r,
		middleware: mw,
	}
}

// WithLogger attaches a logger for handler and commit failures.
func (c *Consumer) WithLogger(logger Logger) *Consumer {
	c.logger = logger
	return c
}

// WithTracer continues the trace found in message headers and wraps each
// handler call in a "<topic> process" span.
func (c *Consumer) WithTracer(t *tracer.Tracer) *Consumer {
	c.tracer = t
	return c
}

// Run fetches and handles messages until ctx is done or the reader is closed.
//
// A failed message is logged and not committed, but it is not redelivered
// either: the next successful commit on the same partition moves the group
// offset past it. Handlers that need a retry must do it before returning.
// A commit failure stops the loop.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		switch {
		case ctx.Err() != nil:
			c.logInfo(ctx, "Kafka consumer stopped", nil, nil)
			return nil
		case errors.Is(err, io.EOF):
			c.logInfo(ctx, "Kafka reader closed", nil, nil)
			return nil
		case err != nil:
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		if err := c.handle(ctx, msg, handler); err != nil {
			continue
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logError(ctx, "Failed to commit message", err, map[string]interface{}{
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message, handler Handler) error {
	var span trace.Span
	if c.tracer != nil {
		ctx = c.tracer.SetCarrierOnContext(ctx, traceCarrier(msg.Headers))
		ctx, span = c.tracer.StartSpan(ctx, msg.Topic+" process")
		defer span.End()
	}

	err := c.middleware.ConsumeScope(ctx, msg, handler)
	if err != nil {
		c.logWarn(ctx, "Kafka handler failed", err, map[string]interface{}{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})
		if span != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
	}
	return err
}

func (c *Consumer) logInfo(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, err, fields)
	}
}

func (c *Consumer) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func (c *Consumer) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
