package brokermetrics

import (
	"fmt"
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager records observations on a Container's instruments, attaching the
// fixed app_name and extra labels to every sample.
//
// It is the only type that touches the instruments directly. Label mismatches
// are programming errors and panic inside client_golang.
//
// All methods are safe for concurrent use.
type Manager struct {
	container   *Container
	appName     string
	extraLabels map[string]string
}

// NewManager creates a Manager for the given container.
//
// extraLabels is copied; later changes to the caller's map have no effect.
// Its keys must match the extra label names the container was built with,
// otherwise ErrInvalidConfig is returned instead of panicking on the first
// observation.
func NewManager(container *Container, appName string, extraLabels map[string]string) (*Manager, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: nil container", ErrInvalidConfig)
	}

	got := slices.Sorted(maps.Keys(extraLabels))
	want := container.ExtraLabels()
	if !slices.Equal(got, want) {
		return nil, fmt.Errorf("%w: extra labels %v do not match instrument labels %v", ErrInvalidConfig, got, want)
	}

	return &Manager{
		container:   container,
		appName:     appName,
		extraLabels: maps.Clone(extraLabels),
	}, nil
}

// AppName returns the app_name label value.
func (m *Manager) AppName() string {
	return m.appName
}

// ExtraLabels returns a copy of the extra labels applied to every sample.
func (m *Manager) ExtraLabels() map[string]string {
	extra := maps.Clone(m.extraLabels)
	if extra == nil {
		extra = map[string]string{}
	}
	return extra
}

// AddReceivedMessage increments received_messages_total by amount.
func (m *Manager) AddReceivedMessage(broker, handler string, amount int) {
	m.container.ReceivedMessagesTotal.
		With(m.labels(broker, LabelHandler, handler)).
		Add(float64(amount))
}

// ObserveReceivedMessagesSize records a payload size in received_messages_size_bytes.
func (m *Manager) ObserveReceivedMessagesSize(broker, handler string, size int) {
	m.container.ReceivedMessagesSizeBytes.
		With(m.labels(broker, LabelHandler, handler)).
		Observe(float64(size))
}

// ReceivedMessagesInProcessDelta adjusts received_messages_in_process by a signed delta.
func (m *Manager) ReceivedMessagesInProcessDelta(broker, handler string, delta float64) {
	m.container.ReceivedMessagesInProcess.
		With(m.labels(broker, LabelHandler, handler)).
		Add(delta)
}

// AddReceivedMessageInProcess increments received_messages_in_process by amount.
func (m *Manager) AddReceivedMessageInProcess(broker, handler string, amount int) {
	m.ReceivedMessagesInProcessDelta(broker, handler, float64(amount))
}

// RemoveReceivedMessageInProcess decrements received_messages_in_process by amount.
func (m *Manager) RemoveReceivedMessageInProcess(broker, handler string, amount int) {
	m.ReceivedMessagesInProcessDelta(broker, handler, -float64(amount))
}

// AddReceivedProcessedMessage increments received_processed_messages_total for status.
func (m *Manager) AddReceivedProcessedMessage(broker, handler string, status Status, amount int) {
	m.container.ReceivedProcessedMessagesTotal.
		With(m.labels(broker, LabelHandler, handler, LabelStatus, status.String())).
		Add(float64(amount))
}

// ObserveReceivedProcessedMessageDuration records a handler duration in seconds.
func (m *Manager) ObserveReceivedProcessedMessageDuration(broker, handler string, seconds float64) {
	m.container.ReceivedProcessedMessagesDurationSeconds.
		With(m.labels(broker, LabelHandler, handler)).
		Observe(seconds)
}

// AddReceivedProcessedMessageException increments received_processed_messages_exceptions_total.
func (m *Manager) AddReceivedProcessedMessageException(broker, handler, exceptionType string) {
	m.container.ReceivedProcessedMessagesExceptionsTotal.
		With(m.labels(broker, LabelHandler, handler, LabelExceptionType, exceptionType)).
		Inc()
}

// AddPublishedMessage increments published_messages_total for status.
func (m *Manager) AddPublishedMessage(broker, destination string, status Status, amount int) {
	m.container.PublishedMessagesTotal.
		With(m.labels(broker, LabelDestination, destination, LabelStatus, status.String())).
		Add(float64(amount))
}

// ObservePublishedMessageDuration records a send duration in seconds.
func (m *Manager) ObservePublishedMessageDuration(broker, destination string, seconds float64) {
	m.container.PublishedMessagesDurationSeconds.
		With(m.labels(broker, LabelDestination, destination)).
		Observe(seconds)
}

// AddPublishedMessageException increments published_messages_exceptions_total.
func (m *Manager) AddPublishedMessageException(broker, destination, exceptionType string) {
	m.container.PublishedMessagesExceptionsTotal.
		With(m.labels(broker, LabelDestination, destination, LabelExceptionType, exceptionType)).
		Inc()
}

// labels builds the full label set: app_name, broker, the given name/value
// pairs and the extra labels.
func (m *Manager) labels(broker string, pairs ...string) prometheus.Labels {
	labels := make(prometheus.Labels, 2+len(pairs)/2+len(m.extraLabels))
	labels[LabelAppName] = m.appName
	labels[LabelBroker] = broker
	for i := 0; i+1 < len(pairs); i += 2 {
		labels[pairs[i]] = pairs[i+1]
	}
	for name, value := range m.extraLabels {
		labels[name] = value
	}
	return labels
}
