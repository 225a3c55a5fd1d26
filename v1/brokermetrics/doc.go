// Package brokermetrics provides broker-agnostic Prometheus instrumentation
// for message consumers and publishers.
//
// The package records how many messages a service receives and publishes,
// how large they are, how long they take, how many are in flight and how
// they fail. It is written once against a small SettingsProvider contract;
// the rabbit, nats and kafka packages supply the broker-specific parts.
//
// # Architecture
//
// The package is split into four parts:
//   - Container: the nine instruments, created or reused in a prometheus.Registerer
//   - Manager: the only type that records observations; it attaches the
//     app_name and extra labels to every sample
//   - SettingsProvider: per-broker label extraction and outcome classification
//   - Middleware: wraps a consume handler or a publish call and drives the
//     Manager around it
//
// # Instruments
//
// With the default prefix "faststream" the following instruments exist. All
// of them carry app_name and broker plus the configured extra labels:
//
//	faststream_received_messages_total                          counter    handler
//	faststream_received_messages_size_bytes                     histogram  handler
//	faststream_received_messages_in_process                     gauge      handler
//	faststream_received_processed_messages_total                counter    handler, status
//	faststream_received_processed_messages_duration_seconds     histogram  handler
//	faststream_received_processed_messages_exceptions_total     counter    handler, exception_type
//	faststream_published_messages_total                         counter    destination, status
//	faststream_published_messages_duration_seconds              histogram  destination
//	faststream_published_messages_exceptions_total              counter    destination, exception_type
//
// Status is "success" or "error". The exception type is derived from the
// returned error (see ExceptionType); a panicking handler is recorded as
// "panic" and the panic is re-raised.
//
// # Direct Usage (Without FX)
//
//	import (
//		"github.com/prometheus/client_golang/prometheus"
//
//		"github.com/Drakorgaur/faststream/v1/brokermetrics"
//		"github.com/Drakorgaur/faststream/v1/rabbit"
//	)
//
//	reg := prometheus.NewRegistry()
//
//	mw, err := rabbit.NewPrometheusMiddleware(brokermetrics.Config{
//		AppName:    "orders",
//		Registerer: reg,
//	})
//	if err != nil {
//		return err
//	}
//
//	err = mw.ConsumeScope(ctx, delivery, func(ctx context.Context, d *amqp.Delivery) error {
//		return process(d.Body)
//	})
//
// Middlewares for different brokers may share one registerer. Instruments are
// registered the first time a prefix is used and reused afterwards, so a
// process with a RabbitMQ and a NATS middleware exposes one set of series
// distinguished by the broker label.
//
// # Custom Brokers
//
// Any transport can be instrumented by implementing SettingsProvider for its
// inbound message type M and outbound command type P:
//
//	type provider struct {
//		brokermetrics.BaseProvider
//	}
//
//	func (provider) BrokerName() string                        { return "redis" }
//	func (provider) MessagingDestinationName(m *Msg) string    { return m.Channel }
//	func (provider) ReceivedPayloadSize(m *Msg) int            { return len(m.Payload) }
//	func (provider) PublishDestinationName(c PublishCmd) string { return c.Channel }
//
//	mw, err := brokermetrics.New[*Msg, PublishCmd](provider{}, cfg)
//
// Providers whose inbound value holds several messages also implement
// BatchProvider; the count is then used for the received, in-process and
// processed instruments.
//
// # Configuration
//
//	METRICS_APP_NAME=orders             # app_name label, defaults to the prefix
//	METRICS_PREFIX=faststream           # instrument name prefix
//	METRICS_USE_VERSION_LABEL=true      # add version=<module version>
//
// Extra labels become part of every instrument's schema. When ExtraLabels is
// set it replaces the version label.
//
// # Thread Safety
//
// Middleware, Manager and Container are safe for concurrent use. Recording
// goes through client_golang's atomic primitives; the package holds no locks.
package brokermetrics
