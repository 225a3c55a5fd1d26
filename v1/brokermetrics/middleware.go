package brokermetrics

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Logger is the subset of logger.Logger used by the middleware. It is only
// used for construction events, never per message.
type Logger interface {
	// Info logs an informational message with optional structured fields.
	Info(msg string, err error, fields ...map[string]interface{})

	// Error logs an error message with optional structured fields.
	Error(msg string, err error, fields ...map[string]interface{})
}

// ConsumeFunc is the wrapped inbound handler.
type ConsumeFunc[M any] func(ctx context.Context, msg M) error

// PublishFunc is the wrapped outbound send operation.
type PublishFunc[P any] func(ctx context.Context, cmd P) error

// Option configures a Middleware.
type Option func(*options)

type options struct {
	logger Logger
	now    func() time.Time
}

// WithLogger attaches a logger for construction events.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Middleware instruments the consume and publish paths of one broker.
//
// It is written once against SettingsProvider and never sees a concrete
// broker type. All methods are safe for concurrent use; the only shared
// state is the instrument set, which is updated through atomic client_golang
// primitives.
type Middleware[M, P any] struct {
	provider  SettingsProvider[M, P]
	container *Container
	manager   *Manager
	now       func() time.Time
}

// New builds a Middleware for provider, creating or reusing the instrument
// set in cfg.Registerer.
//
// A nil provider yields a pass-through middleware that records nothing. A nil
// *Middleware is also pass-through.
//
// Returns a configuration error if cfg.Registerer is nil, the bucket override
// is invalid, or the instrument names are taken with another label schema.
func New[M, P any](provider SettingsProvider[M, P], cfg Config, opts ...Option) (*Middleware[M, P], error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	appName, prefix, extra := cfg.resolved()

	container, err := NewContainer(cfg.Registerer, ContainerOptions{
		MetricsPrefix:               prefix,
		ReceivedMessagesSizeBuckets: cfg.ReceivedMessagesSizeBuckets,
		ExtraLabels:                 slices.Collect(maps.Keys(extra)),
	})
	if err != nil {
		if o.logger != nil {
			o.logger.Error("Failed to register broker metrics", err, map[string]interface{}{
				"metrics_prefix": prefix,
			})
		}
		return nil, fmt.Errorf("failed to create metrics container: %w", err)
	}

	manager, err := NewManager(container, appName, extra)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics manager: %w", err)
	}

	m := &Middleware[M, P]{
		provider:  provider,
		container: container,
		manager:   manager,
		now:       o.now,
	}

	if o.logger != nil {
		broker := ""
		if provider != nil {
			broker = provider.BrokerName()
		}
		o.logger.Info("Broker metrics middleware initialized", nil, map[string]interface{}{
			"broker":         broker,
			"app_name":       appName,
			"metrics_prefix": prefix,
			"extra_labels":   container.ExtraLabels(),
		})
	}

	return m, nil
}

// Manager returns the manager recording this middleware's observations.
func (m *Middleware[M, P]) Manager() *Manager {
	return m.manager
}

// Container returns the instrument set this middleware records into.
func (m *Middleware[M, P]) Container() *Container {
	return m.container
}

// ConsumeScope runs next for an inbound message and records it.
//
// Before next runs, the message is counted as received, its size observed
// and the in-process gauge incremented. After next returns or panics, the
// processed counter is incremented with the outcome's status, failures are
// counted by exception type, the duration is observed and the gauge is
// decremented. The error returned by next is returned unchanged and a panic
// is re-raised with its original value. A next that ends its goroutine with
// runtime.Goexit is recorded as a GoexitError.
func (m *Middleware[M, P]) ConsumeScope(ctx context.Context, msg M, next ConsumeFunc[M]) (err error) {
	if m == nil || m.provider == nil {
		return next(ctx, msg)
	}

	broker := m.provider.BrokerName()
	handler := m.provider.MessagingDestinationName(msg)
	count := m.messagesCount(msg)

	m.manager.AddReceivedMessage(broker, handler, count)
	m.manager.ObserveReceivedMessagesSize(broker, handler, m.provider.ReceivedPayloadSize(msg))
	m.manager.AddReceivedMessageInProcess(broker, handler, count)

	start := m.now()
	defer func() {
		m.manager.ObserveReceivedProcessedMessageDuration(broker, handler, m.since(start))
		m.manager.RemoveReceivedMessageInProcess(broker, handler, count)
	}()

	completed := false
	defer func() {
		if completed {
			return
		}
		if r := recover(); r != nil {
			m.recordProcessed(broker, handler, count, PanicError{Value: r})
			panic(r)
		}
		m.recordProcessed(broker, handler, count, GoexitError{})
	}()

	err = next(ctx, msg)
	completed = true
	m.recordProcessed(broker, handler, count, err)
	return err
}

// PublishScope runs next for an outbound command and records it.
//
// The published counter is incremented with the outcome's status, failures
// are counted by exception type and the duration is always observed. The
// error returned by next is returned unchanged and a panic is re-raised.
// runtime.Goexit inside next is recorded as a GoexitError.
func (m *Middleware[M, P]) PublishScope(ctx context.Context, cmd P, next PublishFunc[P]) (err error) {
	if m == nil || m.provider == nil {
		return next(ctx, cmd)
	}

	broker := m.provider.BrokerName()
	destination := m.provider.PublishDestinationName(cmd)
	count := m.publishedCount(cmd)

	start := m.now()
	defer func() {
		m.manager.ObservePublishedMessageDuration(broker, destination, m.since(start))
	}()

	completed := false
	defer func() {
		if completed {
			return
		}
		if r := recover(); r != nil {
			m.recordPublished(broker, destination, count, PanicError{Value: r})
			panic(r)
		}
		m.recordPublished(broker, destination, count, GoexitError{})
	}()

	err = next(ctx, cmd)
	completed = true
	m.recordPublished(broker, destination, count, err)
	return err
}

func (m *Middleware[M, P]) recordProcessed(broker, handler string, count int, err error) {
	status, exceptionType := m.provider.ClassifyOutcome(err)
	m.manager.AddReceivedProcessedMessage(broker, handler, status, count)
	if status == StatusError && exceptionType != "" {
		m.manager.AddReceivedProcessedMessageException(broker, handler, exceptionType)
	}
}

func (m *Middleware[M, P]) recordPublished(broker, destination string, count int, err error) {
	status, exceptionType := m.provider.ClassifyOutcome(err)
	m.manager.AddPublishedMessage(broker, destination, status, count)
	if status == StatusError && exceptionType != "" {
		m.manager.AddPublishedMessageException(broker, destination, exceptionType)
	}
}

func (m *Middleware[M, P]) messagesCount(msg M) int {
	if batch, ok := m.provider.(BatchProvider[M]); ok {
		if n := batch.MessagesCount(msg); n > 0 {
			return n
		}
	}
	return 1
}

func (m *Middleware[M, P]) publishedCount(cmd P) int {
	if batch, ok := m.provider.(PublishBatchProvider[P]); ok {
		if n := batch.PublishedMessagesCount(cmd); n > 0 {
			return n
		}
	}
	return 1
}

// since returns the seconds elapsed from start, clamped at zero.
func (m *Middleware[M, P]) since(start time.Time) float64 {
	elapsed := m.now().Sub(start).Seconds()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
