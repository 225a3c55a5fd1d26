package rabbit

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// FXModule is an fx.Module that provides the RabbitMQ metrics middleware.
//
// The module provides *Middleware built from the injected
// brokermetrics.Config and prometheus.Registerer. When several broker
// modules are installed, their middlewares share one instrument set.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    rabbit.FXModule,
//	    fx.Provide(func() brokermetrics.Config {
//	        return brokermetrics.Config{AppName: "orders"}
//	    }),
//	    fx.Invoke(func(mw *rabbit.Middleware, ch *amqp.Channel) {
//	        publisher := rabbit.NewPublisher(ch, mw)
//	        // ...
//	    }),
//	)
var FXModule = fx.Module("rabbit-metrics",
	fx.Provide(
		NewMiddlewareWithDI,
	),
)

// NewMiddlewareWithDI creates the RabbitMQ middleware from injected dependencies.
func NewMiddlewareWithDI(params brokermetrics.MiddlewareParams) (*Middleware, error) {
	return brokermetrics.NewWithDI[*amqp.Delivery, PublishCommand](Provider{}, params)
}
