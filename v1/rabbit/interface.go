package rabbit

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelPublisher is the part of *amqp.Channel used to publish messages.
type ChannelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ChannelConsumer is the part of *amqp.Channel used to start a consumer.
type ChannelConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

var (
	_ ChannelPublisher = (*amqp.Channel)(nil)
	_ ChannelConsumer  = (*amqp.Channel)(nil)
)
