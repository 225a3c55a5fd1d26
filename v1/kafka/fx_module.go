package kafka

import (
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// FXModule provides the Kafka metrics middleware.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    kafka.FXModule,
//	    fx.Supply(brokermetrics.Config{AppName: "billing"}),
//	)
var FXModule = fx.Module("kafka-metrics",
	fx.Provide(
		NewMiddlewareWithDI,
	),
)

// NewMiddlewareWithDI creates the Kafka middleware from injected dependencies.
func NewMiddlewareWithDI(params brokermetrics.MiddlewareParams) (*Middleware, error) {
	return brokermetrics.NewWithDI[kafka.Message, PublishCommand](Provider{}, params)
}
