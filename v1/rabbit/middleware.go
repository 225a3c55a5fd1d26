package rabbit

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// Middleware instruments RabbitMQ deliveries and publishes.
type Middleware = brokermetrics.Middleware[*amqp.Delivery, PublishCommand]

// Handler processes one delivery. Returning nil acks it, an error nacks it.
type Handler = brokermetrics.ConsumeFunc[*amqp.Delivery]

// NewPrometheusMiddleware creates the metrics middleware for RabbitMQ.
//
// Example:
//
//	mw, err := rabbit.NewPrometheusMiddleware(brokermetrics.Config{
//		Registerer:  registry,
//		ExtraLabels: map[string]string{"env": "prod"},
//	})
//	if err != nil {
//		return err
//	}
//	publisher := rabbit.NewPublisher(ch, mw)
func NewPrometheusMiddleware(cfg brokermetrics.Config, opts ...brokermetrics.Option) (*Middleware, error) {
	return brokermetrics.New[*amqp.Delivery, PublishCommand](Provider{}, cfg, opts...)
}
