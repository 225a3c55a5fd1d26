package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

func TestConsumerRunCommitsSuccessfulMessages(t *testing.T) {
	mw := newTestMiddleware(t)
	log := &recordingLogger{}
	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "invoices", Offset: 1, Value: []byte("ok")},
		{Topic: "invoices", Offset: 2, Value: []byte("fail")},
		{Topic: "invoices", Offset: 3, Value: []byte("ok")},
	}}

	err := NewConsumer(reader, mw).WithLogger(log).Run(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		if string(msg.Value) == "fail" {
			return kafka.MessageSizeTooLarge
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, reader.committed)
	assert.Equal(t, []string{"Kafka handler failed"}, log.messages["warn"])
	assert.Equal(t, []string{"Kafka reader closed"}, log.messages["info"])

	c := mw.Container()
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ReceivedMessagesTotal.With(labels(brokermetrics.LabelHandler, "invoices"))))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ReceivedProcessedMessagesTotal.With(labels(brokermetrics.LabelHandler, "invoices", brokermetrics.LabelStatus, "success"))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ReceivedProcessedMessagesExceptionsTotal.With(labels(brokermetrics.LabelHandler, "invoices", brokermetrics.LabelExceptionType, "MessageSizeTooLarge"))))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.ReceivedMessagesInProcess.With(labels(brokermetrics.LabelHandler, "invoices"))))
}

func TestConsumerRunStopsOnContextCancel(t *testing.T) {
	mw := newTestMiddleware(t)
	reader := &fakeReader{messages: []kafka.Message{{Topic: "invoices", Offset: 1}, {Topic: "invoices", Offset: 2}}}

	ctx, cancel := context.WithCancel(context.Background())
	err := NewConsumer(reader, mw).Run(ctx, func(ctx context.Context, msg kafka.Message) error {
		cancel()
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, reader.messages, 1)
}

func TestConsumerRunFetchError(t *testing.T) {
	mw := newTestMiddleware(t)
	fetchErr := errors.New("broker unreachable")
	reader := &fakeReader{fetchErr: fetchErr}

	err := NewConsumer(reader, mw).Run(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	require.ErrorIs(t, err, fetchErr)
}

func TestConsumerRunCommitError(t *testing.T) {
	mw := newTestMiddleware(t)
	log := &recordingLogger{}
	reader := &fakeReader{
		messages:  []kafka.Message{{Topic: "invoices", Partition: 2, Offset: 9}},
		commitErr: kafka.RebalanceInProgress,
	}

	err := NewConsumer(reader, mw).WithLogger(log).Run(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	require.ErrorIs(t, err, kafka.RebalanceInProgress)
	assert.Equal(t, []string{"Failed to commit message"}, log.messages["error"])
	require.NotEmpty(t, log.fields)
	assert.Equal(t, 2, log.fields[len(log.fields)-1]["partition"])
}

func TestConsumerRunFailedMessageIsNotRetried(t *testing.T) {
	mw := newTestMiddleware(t)
	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "invoices", Partition: 0, Offset: 7, Value: []byte("fail")},
		{Topic: "invoices", Partition: 0, Offset: 8, Value: []byte("ok")},
	}}

	var seen []int64
	err := NewConsumer(reader, mw).Run(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		seen = append(seen, msg.Offset)
		if string(msg.Value) == "fail" {
			return errors.New("invalid invoice")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 8}, seen)
	assert.Equal(t, []int64{8}, reader.committed)
}

func TestConsumerRunContinuesTrace(t *testing.T) {
	tr, recorder := newTestTracer(t)
	w := &fakeWriter{}

	require.NoError(t, NewPublisher(w, nil).WithTracer(tr).Publish(context.Background(),
		kafka.Message{Topic: "invoices", Offset: 1, Value: []byte("ok")},
		kafka.Message{Topic: "invoices", Offset: 2, Value: []byte("fail")},
	))
	require.Len(t, w.written, 1)
	publishSpan := recorder.Ended()[0]

	var handlerTraces []trace.TraceID
	reader := &fakeReader{messages: w.written[0]}
	err := NewConsumer(reader, newTestMiddleware(t)).WithTracer(tr).Run(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		handlerTraces = append(handlerTraces, trace.SpanContextFromContext(ctx).TraceID())
		if string(msg.Value) == "fail" {
			return errors.New("invalid invoice")
		}
		return nil
	})
	require.NoError(t, err)

	traceID := publishSpan.SpanContext().TraceID()
	assert.Equal(t, []trace.TraceID{traceID, traceID}, handlerTraces)

	ended := recorder.Ended()
	require.Len(t, ended, 3)
	for _, span := range ended[1:] {
		assert.Equal(t, "invoices process", span.Name())
		assert.Equal(t, traceID, span.SpanContext().TraceID())
		assert.Equal(t, publishSpan.SpanContext().SpanID(), span.Parent().SpanID())
	}
	assert.Equal(t, codes.Unset, ended[1].Status().Code)
	assert.Equal(t, codes.Error, ended[2].Status().Code)
}
