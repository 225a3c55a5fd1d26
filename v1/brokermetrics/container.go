package brokermetrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"
)

// Label names shared by all instruments.
const (
	LabelAppName       = "app_name"
	LabelBroker        = "broker"
	LabelHandler       = "handler"
	LabelDestination   = "destination"
	LabelStatus        = "status"
	LabelExceptionType = "exception_type"
)

// DefaultSizeBuckets are the received_messages_size_bytes boundaries in bytes:
// powers of four from 16 B to 16 MiB followed by +Inf.
var DefaultSizeBuckets = []float64{
	1 << 4,
	1 << 6,
	1 << 8,
	1 << 10,
	1 << 12,
	1 << 14,
	1 << 16,
	1 << 18,
	1 << 20,
	1 << 22,
	1 << 24,
	math.Inf(1),
}

// ContainerOptions controls instrument naming and schema.
type ContainerOptions struct {
	// MetricsPrefix is prepended to every instrument name. Empty means DefaultMetricsPrefix.
	MetricsPrefix string

	// ReceivedMessagesSizeBuckets overrides DefaultSizeBuckets.
	ReceivedMessagesSizeBuckets []float64

	// ExtraLabels are the names of user-defined labels appended to every
	// instrument's label schema. Order does not matter.
	ExtraLabels []string
}

// Container holds the instrument set shared by every middleware that uses
// the same prefix and registerer.
//
// Instruments are created on first use of a name and reused afterwards; when
// reused, the schema arguments of the later caller are ignored.
type Container struct {
	ReceivedMessagesTotal                    *prometheus.CounterVec
	ReceivedMessagesSizeBytes                *prometheus.HistogramVec
	ReceivedMessagesInProcess                *prometheus.GaugeVec
	ReceivedProcessedMessagesTotal           *prometheus.CounterVec
	ReceivedProcessedMessagesDurationSeconds *prometheus.HistogramVec
	ReceivedProcessedMessagesExceptionsTotal *prometheus.CounterVec
	PublishedMessagesTotal                   *prometheus.CounterVec
	PublishedMessagesDurationSeconds         *prometheus.HistogramVec
	PublishedMessagesExceptionsTotal         *prometheus.CounterVec

	prefix      string
	extraLabels []string
}

// NewContainer creates or reuses the instrument set under opts.MetricsPrefix
// in reg.
//
// Returns an error if reg is nil, if the bucket override is not strictly
// increasing, or if a name is already taken by an instrument with another
// label schema. On error, instruments registered by this call are
// unregistered again.
func NewContainer(reg prometheus.Registerer, opts ContainerOptions) (*Container, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}

	prefix := opts.MetricsPrefix
	if prefix == "" {
		prefix = DefaultMetricsPrefix
	}
	if !model.LegacyValidation.IsValidMetricName(prefix) {
		return nil, fmt.Errorf("%w: invalid metrics prefix %q", ErrInvalidConfig, prefix)
	}

	sizeBuckets := opts.ReceivedMessagesSizeBuckets
	if len(sizeBuckets) == 0 {
		sizeBuckets = DefaultSizeBuckets
	}
	if err := validateBuckets(sizeBuckets); err != nil {
		return nil, err
	}

	extra := slices.Clone(opts.ExtraLabels)
	slices.Sort(extra)
	if err := validateExtraLabels(extra); err != nil {
		return nil, err
	}

	handlerLabels := slices.Concat([]string{LabelAppName, LabelBroker, LabelHandler}, extra)
	destinationLabels := slices.Concat([]string{LabelAppName, LabelBroker, LabelDestination}, extra)
	with := func(base []string, label string) []string {
		return slices.Concat(base[:3], []string{label}, extra)
	}

	c := &Container{
		prefix:      prefix,
		extraLabels: extra,
	}

	var (
		errs    []error
		created []prometheus.Collector
	)
	track := func(collector prometheus.Collector, isNew bool, err error) {
		errs = append(errs, err)
		if isNew {
			created = append(created, collector)
		}
	}
	counter := func(suffix, help string, labels []string) *prometheus.CounterVec {
		vec, isNew, err := getOrCreate(reg, createCounterVec(prefix+"_"+suffix, help, labels))
		track(vec, isNew, err)
		return vec
	}
	histogram := func(suffix, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
		vec, isNew, err := getOrCreate(reg, createHistogramVec(prefix+"_"+suffix, help, labels, buckets))
		track(vec, isNew, err)
		return vec
	}
	gauge := func(suffix, help string, labels []string) *prometheus.GaugeVec {
		vec, isNew, err := getOrCreate(reg, createGaugeVec(prefix+"_"+suffix, help, labels))
		track(vec, isNew, err)
		return vec
	}

	c.ReceivedMessagesTotal = counter(
		"received_messages_total",
		"Count of received messages by broker and handler",
		handlerLabels,
	)
	c.ReceivedMessagesSizeBytes = histogram(
		"received_messages_size_bytes",
		"Histogram of received messages size in bytes by broker and handler",
		handlerLabels,
		sizeBuckets,
	)
	c.ReceivedMessagesInProcess = gauge(
		"received_messages_in_process",
		"Gauge of received messages in process by broker and handler",
		handlerLabels,
	)
	c.ReceivedProcessedMessagesTotal = counter(
		"received_processed_messages_total",
		"Count of received processed messages by broker, handler and status",
		with(handlerLabels, LabelStatus),
	)
	c.ReceivedProcessedMessagesDurationSeconds = histogram(
		"received_processed_messages_duration_seconds",
		"Histogram of received processed messages duration in seconds by broker and handler",
		handlerLabels,
		prometheus.DefBuckets,
	)
	c.ReceivedProcessedMessagesExceptionsTotal = counter(
		"received_processed_messages_exceptions_total",
		"Count of received processed messages exceptions by broker, handler and exception_type",
		with(handlerLabels, LabelExceptionType),
	)
	c.PublishedMessagesTotal = counter(
		"published_messages_total",
		"Count of published messages by destination and status",
		with(destinationLabels, LabelStatus),
	)
	c.PublishedMessagesDurationSeconds = histogram(
		"published_messages_duration_seconds",
		"Histogram of published messages duration in seconds by broker and destination",
		destinationLabels,
		prometheus.DefBuckets,
	)
	c.PublishedMessagesExceptionsTotal = counter(
		"published_messages_exceptions_total",
		"Count of published messages exceptions by broker, destination and exception_type",
		with(destinationLabels, LabelExceptionType),
	)

	if err := errors.Join(errs...); err != nil {
		for _, collector := range created {
			reg.Unregister(collector)
		}
		return nil, err
	}

	return c, nil
}

// Prefix returns the instrument name prefix.
func (c *Container) Prefix() string {
	return c.prefix
}

// ExtraLabels returns the sorted extra label names of the container's schema.
func (c *Container) ExtraLabels() []string {
	return slices.Clone(c.extraLabels)
}

// GetOrCreate registers collector with reg and returns it. If a collector with
// an identical descriptor is already registered, the existing one is returned
// and collector is discarded, together with its buckets.
//
// This lets several middlewares, typically one per broker, share instruments
// under a single registry.
func GetOrCreate[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	got, _, err := getOrCreate(reg, collector)
	return got, err
}

// getOrCreate is GetOrCreate that also reports whether collector was newly
// registered.
func getOrCreate[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, bool, error) {
	var zero C
	if reg == nil {
		return zero, false, ErrNilRegisterer
	}

	// A collector that an empty registry rejects is invalid on its own. Any
	// later rejection by reg is a clash with what reg already holds.
	if err := prometheus.NewRegistry().Register(collector); err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err := reg.Register(collector)
	if err == nil {
		return collector, true, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		existing, ok := are.ExistingCollector.(C)
		if !ok {
			return zero, false, fmt.Errorf("%w: existing collector is %T, want %T", ErrLabelSchemaMismatch, are.ExistingCollector, collector)
		}
		return existing, false, nil
	}

	return zero, false, fmt.Errorf("%w: %w", ErrLabelSchemaMismatch, err)
}

// reservedLabels cannot be used as extra label names.
var reservedLabels = []string{
	LabelAppName,
	LabelBroker,
	LabelHandler,
	LabelDestination,
	LabelStatus,
	LabelExceptionType,
	"le",
}

// validateExtraLabels expects sorted names.
func validateExtraLabels(names []string) error {
	for i, name := range names {
		if name == "" || slices.Contains(reservedLabels, name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("%w: extra label %q is reserved", ErrInvalidConfig, name)
		}
		if !model.LegacyValidation.IsValidLabelName(name) {
			return fmt.Errorf("%w: invalid extra label name %q", ErrInvalidConfig, name)
		}
		if i > 0 && names[i-1] == name {
			return fmt.Errorf("%w: duplicate extra label %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

func validateBuckets(buckets []float64) error {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return fmt.Errorf("%w: %v", ErrInvalidBuckets, buckets)
		}
	}
	return nil
}
