package nats

import (
	"context"
	"sync"
	"testing"

	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
	"github.com/Drakorgaur/faststream/v1/tracer"
)

type fakeConn struct {
	mu        sync.Mutex
	handlers  map[string]natsgo.MsgHandler
	queues    map[string]string
	published []*natsgo.Msg
	err       error
}

func (c *fakeConn) Subscribe(subject string, cb natsgo.MsgHandler) (*natsgo.Subscription, error) {
	return c.QueueSubscribe(subject, "", cb)
}

func (c *fakeConn) QueueSubscribe(subject, queue string, cb natsgo.MsgHandler) (*natsgo.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.handlers == nil {
		c.handlers = map[string]natsgo.MsgHandler{}
		c.queues = map[string]string{}
	}
	c.handlers[subject] = cb
	c.queues[subject] = queue
	return &natsgo.Subscription{Subject: subject, Queue: queue}, nil
}

func (c *fakeConn) PublishMsg(msg *natsgo.Msg) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, msg)
	return c.err
}

// deliver invokes the handler registered on msg.Subject, as the NATS client would.
func (c *fakeConn) deliver(msg *natsgo.Msg) {
	c.mu.Lock()
	cb := c.handlers[msg.Subject]
	c.mu.Unlock()
	cb(msg)
}

// fakeFetcher returns the queued batches, then blocks until the fetch
// context expires.
type fakeFetcher struct {
	mu      sync.Mutex
	batches [][]*natsgo.Msg
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(batch int, opts ...natsgo.PullOpt) ([]*natsgo.Msg, error) {
	f.mu.Lock()
	f.calls++
	if len(f.batches) > 0 {
		next := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		if len(next) > batch {
			next = next[:batch]
		}
		return next, nil
	}
	err := f.err
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return nil, natsgo.ErrTimeout
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}

func (l *recordingLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}

func newTestMiddlewares(t *testing.T) (*Middleware, *BatchMiddleware) {
	t.Helper()

	cfg := brokermetrics.Config{AppName: "app", Registerer: prometheus.NewRegistry()}

	mw, err := NewPrometheusMiddleware(cfg)
	require.NoError(t, err)
	batch, err := NewBatchPrometheusMiddleware(cfg)
	require.NoError(t, err)
	return mw, batch
}

func labels(pairs ...string) prometheus.Labels {
	l := prometheus.Labels{
		brokermetrics.LabelAppName: "app",
		brokermetrics.LabelBroker:  BrokerName,
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		l[pairs[i]] = pairs[i+1]
	}
	return l
}

func newTestTracer(t *testing.T) (*tracer.Tracer, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tr, err := tracer.NewClient(tracer.Config{ServiceName: "orders", AppEnv: "test"}, nil, tracer.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, recorder
}
