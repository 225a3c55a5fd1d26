// Package rabbit instruments RabbitMQ consumers and publishers built on
// github.com/rabbitmq/amqp091-go.
//
// # Architecture
//
//   - Provider: the brokermetrics.SettingsProvider for *amqp.Delivery and PublishCommand
//   - Middleware: brokermetrics.Middleware specialised for RabbitMQ
//   - Consumer: dispatches deliveries through the middleware and acks or nacks them
//   - Publisher: publishes through the middleware
//   - ChannelConsumer / ChannelPublisher: the parts of *amqp.Channel that are used
//   - Dial, OpenChannel: connect from a ConnectionConfig, optionally over TLS
//   - WithTracer: optional W3C trace context propagation through message
//     headers, with a publish span per send and a process span per delivery
//
// Reconnection stays with the application; the instrumented types only need
// a channel.
//
// # Labels
//
// The broker label is "rabbitmq". Handler and destination labels are
// "<exchange>.<routing_key>", with "default" standing in for the default
// exchange:
//
//	orders.created      exchange "orders", routing key "created"
//	default.invoices    default exchange, routing key "invoices"
//
// # Exception Types
//
// AMQP channel and connection errors are recorded by reply code name, e.g.
// NotFound (404), AccessRefused (403) or PreconditionFailed (406). Other
// errors use the rules of brokermetrics.ExceptionType.
//
// # Direct Usage (Without FX)
//
//	conn, err := rabbit.Dial(rabbit.ConnectionConfig{
//		Host: "localhost", Port: 5672, User: "guest", Password: "guest",
//	})
//	if err != nil {
//		return err
//	}
//	ch, err := rabbit.OpenChannel(conn, 10)
//
//	mw, err := rabbit.NewPrometheusMiddleware(brokermetrics.Config{
//		AppName:    "orders",
//		Registerer: prometheus.DefaultRegisterer,
//	})
//
//	publisher := rabbit.NewPublisher(ch, mw)
//	err = publisher.Publish(ctx, rabbit.PublishCommand{
//		Exchange:   "orders",
//		RoutingKey: "created",
//		Publishing: amqp.Publishing{Body: payload},
//	})
//
//	consumer := rabbit.NewConsumer(ch, mw).WithLogger(log)
//	wg := &sync.WaitGroup{}
//	err = consumer.Consume(ctx, wg, "orders.created", func(ctx context.Context, d *amqp.Delivery) error {
//		return handle(d.Body)
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		metrics.FXModule,
//		brokermetrics.FXModule,
//		rabbit.FXModule, // provides *rabbit.Middleware
//		fx.Supply(brokermetrics.Config{AppName: "orders"}),
//	)
//
// # Thread Safety
//
// Middleware and Publisher are safe for concurrent use as long as the
// underlying channel is. A Consumer dispatches deliveries of one queue
// sequentially.
package rabbit
