package nats

import (
	natsgo "github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// FXModule provides the NATS metrics middlewares.
//
// Dependencies required by this module:
//   - A brokermetrics.Config instance
//   - A prometheus.Registerer (optional if Config.Registerer is set), usually
//     supplied by metrics.FXModule
//   - A brokermetrics.Logger (optional)
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    nats.FXModule,
//	    fx.Provide(func() brokermetrics.Config {
//	        return brokermetrics.Config{AppName: "billing"}
//	    }),
//	    fx.Invoke(func(mw *nats.Middleware) {
//	        // subscribe handlers through nats.NewSubscriber(nc, mw)
//	    }),
//	)
var FXModule = fx.Module("nats-metrics",
	fx.Provide(
		NewMiddlewareWithDI,
		NewBatchMiddlewareWithDI,
	),
)

// NewMiddlewareWithDI creates the single-message middleware from injected dependencies.
func NewMiddlewareWithDI(params brokermetrics.MiddlewareParams) (*Middleware, error) {
	return brokermetrics.NewWithDI[*natsgo.Msg, *natsgo.Msg](Provider{}, params)
}

// NewBatchMiddlewareWithDI creates the batch middleware from injected dependencies.
func NewBatchMiddlewareWithDI(params brokermetrics.MiddlewareParams) (*BatchMiddleware, error) {
	return brokermetrics.NewWithDI[[]*natsgo.Msg, *natsgo.Msg](BatchProvider{}, params)
}
