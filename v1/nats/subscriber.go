package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"

	"github.com/Drakorgaur/faststream/v1/tracer"
)

// Subscriber registers instrumented handlers on a NATS connection.
type Subscriber struct {
	nc         MsgSubscriber
	middleware *Middleware
	logger     Logger
	tracer     *tracer.Tracer
}

// NewSubscriber creates a Subscriber that runs every handler inside mw.
func NewSubscriber(nc MsgSubscriber, mw *Middleware) *Subscriber {
	return &Subscriber{
		nc:         nc,
		middleware: mw,
	}
}

// WithLogger attaches a logger used to report handler failures.
func (s *Subscriber) WithLogger(logger Logger) *Subscriber {
	s.logger = logger
	return s
}

// WithTracer continues the trace found in message headers and wraps each
// handler call in a "<subject> process" span.
func (s *Subscriber) WithTracer(t *tracer.Tracer) *Subscriber {
	s.tracer = t
	return s
}

// Subscribe registers handler on subject. Handler errors are recorded by the
// middleware and logged; NATS core has no negative acknowledgement.
//
// ctx is passed to every handler invocation.
func (s *Subscriber) Subscribe(ctx context.Context, subject string, handler Handler) (*natsgo.Subscription, error) {
	sub, err := s.nc.Subscribe(subject, s.MsgHandler(ctx, handler))
	if err != nil {
		return nil, fmt.Errorf("nats: subscribe %s: %w", subject, err)
	}
	return sub, nil
}

// QueueSubscribe registers handler on subject as a member of queue group.
func (s *Subscriber) QueueSubscribe(ctx context.Context, subject, queue string, handler Handler) (*natsgo.Subscription, error) {
	sub, err := s.nc.QueueSubscribe(subject, queue, s.MsgHandler(ctx, handler))
	if err != nil {
		return nil, fmt.Errorf("nats: queue subscribe %s/%s: %w", subject, queue, err)
	}
	return sub, nil
}

// MsgHandler adapts handler to a nats.MsgHandler running inside the middleware.
func (s *Subscriber) MsgHandler(ctx context.Context, handler Handler) natsgo.MsgHandler {
	return func(msg *natsgo.Msg) {
		s.handle(ctx, msg, handler)
	}
}

func (s *Subscriber) handle(ctx context.Context, msg *natsgo.Msg, handler Handler) {
	var span trace.Span
	if s.tracer != nil {
		ctx = s.tracer.SetCarrierOnContext(ctx, traceCarrier(msg.Header))
		ctx, span = s.tracer.StartSpan(ctx, msg.Subject+" process")
		defer span.End()
	}

	if err := s.middleware.ConsumeScope(ctx, msg, handler); err != nil {
		s.logWarn(ctx, "NATS handler failed", err, map[string]interface{}{
			"subject": msg.Subject,
		})
		if span != nil {
			s.tracer.RecordErrorOnSpan(span, err)
		}
	}
}

// DefaultFetchWait bounds a single Fetch call of a BatchConsumer.
const DefaultFetchWait = 5 * time.Second

// BatchConsumer drives a pull subscription, running each fetched batch
// inside a BatchMiddleware.
type BatchConsumer struct {
	middleware *BatchMiddleware
	logger     Logger
	fetchWait  time.Duration
}

// NewBatchConsumer creates a BatchConsumer.
func NewBatchConsumer(mw *BatchMiddleware) *BatchConsumer {
	return &BatchConsumer{
		middleware: mw,
		fetchWait:  DefaultFetchWait,
	}
}

// WithLogger attaches a logger used to report handler failures.
func (c *BatchConsumer) WithLogger(logger Logger) *BatchConsumer {
	c.logger = logger
	return c
}

// WithFetchWait overrides DefaultFetchWait.
func (c *BatchConsumer) WithFetchWait(wait time.Duration) *BatchConsumer {
	if wait > 0 {
		c.fetchWait = wait
	}
	return c
}

// Run fetches up to size messages at a time from fetcher until ctx is done.
// Fetch timeouts are retried; any other fetch error stops the loop.
func (c *BatchConsumer) Run(ctx context.Context, fetcher BatchFetcher, size int, handler BatchHandler) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		batch, err := c.fetch(ctx, fetcher, size)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, natsgo.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
			continue
		default:
			return fmt.Errorf("nats: fetch batch: %w", err)
		}

		if len(batch) == 0 {
			continue
		}

		if err := c.middleware.ConsumeScope(ctx, batch, handler); err != nil && c.logger != nil {
			c.logger.WarnWithContext(ctx, "NATS batch handler failed", err, map[string]interface{}{
				"subject": batch[0].Subject,
				"size":    len(batch),
			})
		}
	}
}

func (c *BatchConsumer) fetch(ctx context.Context, fetcher BatchFetcher, size int) ([]*natsgo.Msg, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchWait)
	defer cancel()
	return fetcher.Fetch(size, natsgo.Context(fetchCtx))
}

func (s *Subscriber) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
