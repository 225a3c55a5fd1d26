package kafka

import (
	"github.com/segmentio/kafka-go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// Middleware instruments Kafka reads and writes.
type Middleware = brokermetrics.Middleware[kafka.Message, PublishCommand]

// Handler processes one message. Returning nil commits it.
type Handler = brokermetrics.ConsumeFunc[kafka.Message]

// NewPrometheusMiddleware creates the metrics middleware for Kafka.
func NewPrometheusMiddleware(cfg brokermetrics.Config, opts ...brokermetrics.Option) (*Middleware, error) {
	return brokermetrics.New[kafka.Message, PublishCommand](Provider{}, cfg, opts...)
}
