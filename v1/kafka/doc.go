// Package kafka instruments Kafka consumers and producers built on
// github.com/segmentio/kafka-go.
//
// # Architecture
//
//   - Provider: the brokermetrics.SettingsProvider for kafka.Message and PublishCommand
//   - Consumer: fetches through a MessageFetcher (usually *kafka.Reader) and
//     commits a message only after its handler succeeded
//   - Publisher: writes through a MessageWriter (usually *kafka.Writer)
//   - WithTracer: optional W3C trace context propagation through message
//     headers on Publisher and Consumer
//   - ErrorLogger: routes kafka-go's internal error log to a structured Logger
//   - NewReader, NewWriter: build clients from ClientConfig with TLS, SASL
//     (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) and compression
//
// # Labels
//
// The broker label is "kafka". Handler labels are the topic the message was
// read from. Destination labels are the command topic, falling back to the
// topic of the first message. A write of n messages increments the published
// counter by n.
//
// Kafka protocol errors are recorded by code title without spaces, e.g.
// "UnknownTopicOrPartition" or "RequestTimedOut".
//
// # Direct Usage (Without FX)
//
//	mw, err := kafka.NewPrometheusMiddleware(brokermetrics.Config{
//		AppName:    "billing",
//		Registerer: registry,
//	})
//
//	cfg := kafka.ClientConfig{
//		Brokers: []string{"localhost:9092"},
//		GroupID: "billing",
//		Topic:   "invoices",
//	}
//	reader, err := kafka.NewReader(cfg, log)
//	if err != nil {
//		return err
//	}
//	defer reader.Close()
//
//	err = kafka.NewConsumer(reader, mw).WithLogger(log).Run(ctx, func(ctx context.Context, msg kafkago.Message) error {
//		return handle(msg.Value)
//	})
//
//	writer, err := kafka.NewWriter(cfg, log)
//	if err != nil {
//		return err
//	}
//	err = kafka.NewPublisher(writer, mw).Publish(ctx, kafkago.Message{Value: payload})
//
// # FX Module Integration
//
//	app := fx.New(
//		metrics.FXModule,
//		brokermetrics.FXModule,
//		kafka.FXModule, // provides *kafka.Middleware
//		fx.Supply(brokermetrics.Config{AppName: "billing"}),
//	)
package kafka
