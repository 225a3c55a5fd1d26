package nats

import (
	natsgo "github.com/nats-io/nats.go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// Middleware instruments single-message subscriptions and publishes.
type Middleware = brokermetrics.Middleware[*natsgo.Msg, *natsgo.Msg]

// BatchMiddleware instruments pull-subscription batches and publishes.
type BatchMiddleware = brokermetrics.Middleware[[]*natsgo.Msg, *natsgo.Msg]

// Handler processes one NATS message.
type Handler = brokermetrics.ConsumeFunc[*natsgo.Msg]

// BatchHandler processes one fetched batch.
type BatchHandler = brokermetrics.ConsumeFunc[[]*natsgo.Msg]

// NewPrometheusMiddleware creates the metrics middleware for NATS messages.
//
// Example:
//
//	mw, err := nats.NewPrometheusMiddleware(brokermetrics.Config{
//		Registerer: registry,
//		AppName:    "billing",
//	})
//	if err != nil {
//		return err
//	}
//	sub := nats.NewSubscriber(nc, mw)
func NewPrometheusMiddleware(cfg brokermetrics.Config, opts ...brokermetrics.Option) (*Middleware, error) {
	return brokermetrics.New[*natsgo.Msg, *natsgo.Msg](Provider{}, cfg, opts...)
}

// NewBatchPrometheusMiddleware creates the metrics middleware for fetched batches.
// It shares instruments with NewPrometheusMiddleware when both use the same
// registerer and prefix.
func NewBatchPrometheusMiddleware(cfg brokermetrics.Config, opts ...brokermetrics.Option) (*BatchMiddleware, error) {
	return brokermetrics.New[[]*natsgo.Msg, *natsgo.Msg](BatchProvider{}, cfg, opts...)
}
