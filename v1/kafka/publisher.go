package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Publisher writes messages through the metrics middleware.
type Publisher struct {
	w          MessageWriter
	middleware *Middleware
	tracer     *tracer.Tracer

	// topic labels writes whose messages carry no topic
	topic string
}

// NewPublisher creates a Publisher writing to w. When w is a *kafka.Writer
// with a fixed Topic, that topic is used as the destination label.
func NewPublisher(w MessageWriter, mw *Middleware) *Publisher {
	p := &Publisher{
		w:          w,
		middleware: mw,
	}
	if kw, ok := w.(*kafka.Writer); ok && kw != nil {
		p.topic = kw.Topic
	}
	return p
}

// WithTopic sets the destination label used when messages carry no topic.
// It does not change where messages are written.
func (p *Publisher) WithTopic(topic string) *Publisher {
	p.topic = topic
	return p
}

// WithTracer starts a "<topic> publish" span around each write and adds its
// trace context to the headers of every message.
func (p *Publisher) WithTracer(t *tracer.Tracer) *Publisher {
	p.tracer = t
	return p
}

// Publish writes msgs in one call. The published counter is incremented by
// len(msgs) under the resolved topic. A call without messages writes and
// records nothing.
//
// Example:
//
//	err := publisher.Publish(ctx, kafka.Message{
//	    Key:   []byte("order-42"),
//	    Value: payload,
//	})
func (p *Publisher) Publish(ctx context.Context, msgs ...kafka.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	cmd := PublishCommand{
		Topic:    p.topic,
		Messages: msgs,
	}
	if p.tracer == nil {
		return p.publish(ctx, cmd)
	}

	ctx, span := p.tracer.StartSpan(ctx, Provider{}.PublishDestinationName(cmd)+" publish")
	defer span.End()

	cmd.Messages = withTraceHeaders(msgs, p.tracer.GetCarrier(ctx))
	err := p.publish(ctx, cmd)
	p.tracer.RecordErrorOnSpan(span, err)
	return err
}

func (p *Publisher) publish(ctx context.Context, cmd PublishCommand) error {
	if p.middleware == nil {
		return p.send(ctx, cmd)
	}
	return p.middleware.PublishScope(ctx, cmd, p.send)
}

func (p *Publisher) send(ctx context.Context, cmd PublishCommand) error {
	return p.w.WriteMessages(ctx, cmd.Messages...)
}
