package nats

import (
	"context"

	natsgo "github.com/nats-io/nats.go"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Publisher sends messages through an instrumented publish path.
type Publisher struct {
	nc         MsgPublisher
	middleware *Middleware
	tracer     *tracer.Tracer
}

// NewPublisher creates a Publisher that records every send in mw.
func NewPublisher(nc MsgPublisher, mw *Middleware) *Publisher {
	return &Publisher{
		nc:         nc,
		middleware: mw,
	}
}

// WithTracer starts a "<subject> publish" span around each send and sets its
// trace context on msg.Header.
func (p *Publisher) WithTracer(t *tracer.Tracer) *Publisher {
	p.tracer = t
	return p
}

// Publish sends msg. A done context fails the publish before anything is sent.
func (p *Publisher) Publish(ctx context.Context, msg *natsgo.Msg) error {
	if p.tracer == nil {
		return p.middleware.PublishScope(ctx, msg, p.send)
	}

	ctx, span := p.tracer.StartSpan(ctx, Provider{}.PublishDestinationName(msg)+" publish")
	defer span.End()

	msg.Header = withTraceHeaders(msg.Header, p.tracer.GetCarrier(ctx))
	err := p.middleware.PublishScope(ctx, msg, p.send)
	p.tracer.RecordErrorOnSpan(span, err)
	return err
}

// PublishData sends data to subject.
func (p *Publisher) PublishData(ctx context.Context, subject string, data []byte) error {
	return p.Publish(ctx, &natsgo.Msg{Subject: subject, Data: data})
}

func (p *Publisher) send(ctx context.Context, msg *natsgo.Msg) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.nc.PublishMsg(msg)
}
