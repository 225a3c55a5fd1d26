package kafka

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
	"github.com/Drakorgaur/faststream/v1/tracer"
)

// fakeReader serves a fixed list of messages, then io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	fetchErr  error
	commitErr error
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.messages) == 0 {
		if r.fetchErr != nil {
			return kafka.Message{}, r.fetchErr
		}
		return kafka.Message{}, io.EOF
	}

	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commitErr != nil {
		return r.commitErr
	}
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}
	return nil
}

type fakeWriter struct {
	mu      sync.Mutex
	written [][]kafka.Message
	err     error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.written = append(w.written, msgs)
	return w.err
}

type recordingLogger struct {
	mu       sync.Mutex
	messages map[string][]string
	fields   []map[string]interface{}
}

func (l *recordingLogger) record(level, msg string, fields []map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.messages == nil {
		l.messages = map[string][]string{}
	}
	l.messages[level] = append(l.messages[level], msg)
	l.fields = append(l.fields, fields...)
}

func (l *recordingLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *recordingLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *recordingLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.record("error", msg, fields)
}

func newTestMiddleware(t *testing.T) *Middleware {
	t.Helper()

	mw, err := NewPrometheusMiddleware(brokermetrics.Config{AppName: "app", Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	return mw
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
	tr, err := tracer.NewClient(tracer.Config{ServiceName: "billing", AppEnv: "test"}, nil, tracer.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, recorder
}
