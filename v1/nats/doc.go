// Package nats instruments NATS subscribers and publishers built on
// github.com/nats-io/nats.go.
//
// Two middlewares are provided. Middleware records one observation per
// *nats.Msg. BatchMiddleware records a []*nats.Msg fetched from a pull
// subscription as one observation whose counters advance by the batch size.
//
// The broker label is "nats"; handler and destination labels are subjects.
//
// Subscriber and Publisher accept a *tracer.Tracer through WithTracer to
// carry W3C trace context in message headers. BatchConsumer does not trace:
// one batch holds messages from unrelated traces.
//
// Example:
//
//	nc, _ := natsgo.Connect(natsgo.DefaultURL)
//	mw, _ := nats.NewPrometheusMiddleware(brokermetrics.Config{Registerer: registry})
//
//	sub, err := nats.NewSubscriber(nc, mw).Subscribe(ctx, "orders.created", func(ctx context.Context, msg *natsgo.Msg) error {
//		return handle(msg.Data)
//	})
//
//	err = nats.NewPublisher(nc, mw).PublishData(ctx, "orders.created", payload)
package nats
