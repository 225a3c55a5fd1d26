package brokermetrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

const testBroker = "test"

type testMsg struct {
	handler string
	body    []byte
	batch   int
}

type testCmd struct {
	destination string
	count       int
}

type testProvider struct {
	BaseProvider
}

func (testProvider) BrokerName() string                          { return testBroker }
func (testProvider) MessagingDestinationName(msg testMsg) string { return msg.handler }
func (testProvider) ReceivedPayloadSize(msg testMsg) int         { return len(msg.body) }
func (testProvider) PublishDestinationName(cmd testCmd) string   { return cmd.destination }
func (testProvider) PublishedMessagesCount(cmd testCmd) int      { return cmd.count }

type testBatchProvider struct {
	testProvider
}

func (testBatchProvider) MessagesCount(msg testMsg) int { return msg.batch }

// TimeoutError stands in for a broker client's timeout error type.
type TimeoutError struct{}

func (TimeoutError) Error() string { return "operation timed out" }

type codedError struct {
	code string
}

func (e *codedError) Error() string         { return "coded: " + e.code }
func (e *codedError) ExceptionType() string { return e.code }

func newTestMiddleware(t *testing.T, cfg Config, opts ...Option) (*Middleware[testMsg, testCmd], *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	if cfg.Registerer == nil {
		cfg.Registerer = reg
	}
	if cfg.AppName == "" {
		cfg.AppName = "app"
	}

	mw, err := New[testMsg, testCmd](testProvider{}, cfg, opts...)
	require.NoError(t, err)
	return mw, reg
}

// handlerLabels returns the label set of a handler-scoped series for app "app".
func handlerLabels(handler string, extra ...string) prometheus.Labels {
	return withPairs(prometheus.Labels{
		LabelAppName: "app",
		LabelBroker:  testBroker,
		LabelHandler: handler,
	}, extra...)
}

// destinationLabels returns the label set of a destination-scoped series for app "app".
func destinationLabels(destination string, extra ...string) prometheus.Labels {
	return withPairs(prometheus.Labels{
		LabelAppName:     "app",
		LabelBroker:      testBroker,
		LabelDestination: destination,
	}, extra...)
}

func withPairs(base prometheus.Labels, pairs ...string) prometheus.Labels {
	for i := 0; i+1 < len(pairs); i += 2 {
		base[pairs[i]] = pairs[i+1]
	}
	return base
}

// findMetric gathers reg and returns the sample of family name whose labels
// equal want.
func findMetric(t *testing.T, reg prometheus.Gatherer, name string, want prometheus.Labels) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsEqual(metric.GetLabel(), want) {
				return metric
			}
		}
	}

	require.Failf(t, "metric not found", "%s%v", name, want)
	return nil
}

func labelsEqual(pairs []*dto.LabelPair, want prometheus.Labels) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, pair := range pairs {
		if want[pair.GetName()] != pair.GetValue() {
			return false
		}
	}
	return true
}

// familiesWithPrefix returns the gathered families whose name starts with prefix.
func familiesWithPrefix(t *testing.T, reg prometheus.Gatherer, prefix string) []*dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	var out []*dto.MetricFamily
	for _, family := range families {
		if strings.HasPrefix(family.GetName(), prefix) {
			out = append(out, family)
		}
	}
	return out
}

// cumulativeCount returns the cumulative count of the bucket with the given
// upper bound.
func cumulativeCount(t *testing.T, h *dto.Histogram, upperBound float64) uint64 {
	t.Helper()

	for _, bucket := range h.GetBucket() {
		if bucket.GetUpperBound() == upperBound {
			return bucket.GetCumulativeCount()
		}
	}

	require.Failf(t, "bucket not found", "le=%v", upperBound)
	return 0
}
