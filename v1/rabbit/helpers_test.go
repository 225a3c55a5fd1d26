package rabbit

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
	"github.com/Drakorgaur/faststream/v1/tracer"
)

// fakeAcknowledger records how deliveries were settled.
type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
	err     error
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return a.err
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return a.err
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

var _ amqp.Acknowledger = (*fakeAcknowledger)(nil)

type fakeChannel struct {
	mu         sync.Mutex
	published  []PublishCommand
	publishErr error

	deliveries chan amqp.Delivery
	consumeErr error
	queue      string
	autoAck    bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, PublishCommand{
		Exchange:   exchange,
		RoutingKey: key,
		Mandatory:  mandatory,
		Immediate:  immediate,
		Publishing: msg,
	})
	return c.publishErr
}

func (c *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = queue
	c.autoAck = autoAck
	if c.consumeErr != nil {
		return nil, c.consumeErr
	}
	return c.deliveries, nil
}

type logEntry struct {
	level string
	msg   string
	err   error
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, err: err})
}

func (l *recordingLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("info", msg, err)
}

func (l *recordingLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("warn", msg, err)
}

func (l *recordingLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("error", msg, err)
}

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func newTestMiddleware(t *testing.T) (*Middleware, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	mw, err := NewPrometheusMiddleware(brokermetrics.Config{AppName: "app", Registerer: reg})
	require.NoError(t, err)
	return mw, reg
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
