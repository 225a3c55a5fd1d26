package rabbit

import (
	"context"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Publisher publishes messages through an instrumented publish path.
type Publisher struct {
	ch         ChannelPublisher
	middleware *Middleware
	tracer     *tracer.Tracer
}

// NewPublisher creates a Publisher that records every publish in mw.
// ch is typically an *amqp.Channel.
func NewPublisher(ch ChannelPublisher, mw *Middleware) *Publisher {
	return &Publisher{
		ch:         ch,
		middleware: mw,
	}
}

// WithTracer starts an "<exchange>.<routing key> publish" span around each
// publish and adds its trace context to the message headers.
func (p *Publisher) WithTracer(t *tracer.Tracer) *Publisher {
	p.tracer = t
	return p
}

// Publish sends cmd. The returned error is the channel's error, unchanged.
//
// Example:
//
//	err := publisher.Publish(ctx, rabbit.PublishCommand{
//		Exchange:   "orders",
//		RoutingKey: "created",
//		Publishing: amqp.Publishing{ContentType: "application/json", Body: body},
//	})
func (p *Publisher) Publish(ctx context.Context, cmd PublishCommand) error {
	if p.tracer == nil {
		return p.middleware.PublishScope(ctx, cmd, p.send)
	}

	ctx, span := p.tracer.StartSpan(ctx, Provider{}.PublishDestinationName(cmd)+" publish")
	defer span.End()

	cmd.Publishing.Headers = withTraceHeaders(cmd.Publishing.Headers, p.tracer.GetCarrier(ctx))
	err := p.middleware.PublishScope(ctx, cmd, p.send)
	p.tracer.RecordErrorOnSpan(span, err)
	return err
}

func (p *Publisher) send(ctx context.Context, cmd PublishCommand) error {
	return p.ch.PublishWithContext(ctx,
		cmd.Exchange,
		cmd.RoutingKey,
		cmd.Mandatory,
		cmd.Immediate,
		cmd.Publishing,
	)
}
