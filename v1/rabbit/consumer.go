package rabbit

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/trace"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Consumer dispatches deliveries to handlers through the metrics middleware
// and settles each delivery from the handler's result.
type Consumer struct {
	ch         ChannelConsumer
	middleware *Middleware
	logger     Logger
	tracer     *tracer.Tracer

	// requeue decides whether failed deliveries are requeued or dead-lettered
	requeue bool
}

// NewConsumer creates a Consumer reading from ch. ch is typically an
// *amqp.Channel and may be nil when only Dispatch is used.
func NewConsumer(ch ChannelConsumer, mw *Middleware) *Consumer {
	return &Consumer{
		ch:         ch,
		middleware: mw,
	}
}

// WithLogger attaches a logger for consumer lifecycle events and settle failures.
func (c *Consumer) WithLogger(logger Logger) *Consumer {
	c.logger = logger
	return c
}

// WithTracer continues the trace found in delivery headers and wraps each
// handler call in an "<exchange>.<routing key> process" span.
func (c *Consumer) WithTracer(t *tracer.Tracer) *Consumer {
	c.tracer = t
	return c
}

// WithRequeue makes failed deliveries go back to the queue instead of being
// rejected to the dead-letter exchange.
func (c *Consumer) WithRequeue(requeue bool) *Consumer {
	c.requeue = requeue
	return c
}

// Consume starts a manual-ack consumer on queue and dispatches its deliveries
// in a background goroutine tracked by wg. It returns once the consumer is
// registered.
//
// Example:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	err := consumer.Consume(ctx, wg, "orders", func(ctx context.Context, d *amqp.Delivery) error {
//	    return process(d.Body)
//	})
func (c *Consumer) Consume(ctx context.Context, wg *sync.WaitGroup, queue string, handler Handler) error {
	if c.ch == nil {
		return fmt.Errorf("failed to start consumer on %s: no channel", queue)
	}

	deliveries, err := c.ch.Consume(
		queue,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer on %s: %w", queue, err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Dispatch(ctx, deliveries, handler)
	}()

	return nil
}

// Dispatch runs handler for every delivery until ctx is done or deliveries
// is closed. Successful deliveries are acked, failed ones nacked.
func (c *Consumer) Dispatch(ctx context.Context, deliveries <-chan amqp.Delivery, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			c.logInfo(ctx, "Stopping consumer due to context cancellation", map[string]interface{}{
				"error": ctx.Err().Error(),
			})
			return
		case d, ok := <-deliveries:
			if !ok {
				c.logInfo(ctx, "Stopping consumer because the delivery channel was closed", nil)
				return
			}
			c.handle(ctx, d, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery, handler Handler) {
	fields := map[string]interface{}{
		"exchange":     d.Exchange,
		"routing_key":  d.RoutingKey,
		"delivery_tag": d.DeliveryTag,
	}

	var span trace.Span
	if c.tracer != nil {
		ctx = c.tracer.SetCarrierOnContext(ctx, traceCarrier(d.Headers))
		ctx, span = c.tracer.StartSpan(ctx, Provider{}.MessagingDestinationName(&d)+" process")
		defer span.End()
	}

	err := c.middleware.ConsumeScope(ctx, &d, handler)
	if err != nil {
		c.logWarn(ctx, "RabbitMQ handler failed", err, fields)
		if span != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
	}

	if d.Acknowledger == nil {
		c.logError(ctx, "Failed to settle message", ErrDeliveryUnacknowledgeable, fields)
		return
	}

	if err != nil {
		if nackErr := d.Nack(false, c.requeue); nackErr != nil {
			c.logError(ctx, "Failed to nack message", nackErr, fields)
		}
		return
	}

	if ackErr := d.Ack(false); ackErr != nil {
		c.logError(ctx, "Failed to ack message", ackErr, fields)
	}
}

func (c *Consumer) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
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
