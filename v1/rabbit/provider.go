package rabbit

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// BrokerName is the broker label value for RabbitMQ.
const BrokerName = "rabbitmq"

// Provider supplies label values for RabbitMQ deliveries and publishes.
// Handler and destination labels are "<exchange>.<routing key>", with the
// default exchange named DefaultExchangeName.
type Provider struct{}

var _ brokermetrics.SettingsProvider[*amqp.Delivery, PublishCommand] = Provider{}

// BrokerName implements brokermetrics.SettingsProvider.
func (Provider) BrokerName() string {
	return BrokerName
}

// MessagingDestinationName returns "<exchange>.<routing key>" of the delivery.
func (Provider) MessagingDestinationName(d *amqp.Delivery) string {
	if d == nil {
		return ""
	}
	return destination(d.Exchange, d.RoutingKey)
}

// ReceivedPayloadSize returns the size of the delivery body.
func (Provider) ReceivedPayloadSize(d *amqp.Delivery) int {
	if d == nil {
		return 0
	}
	return len(d.Body)
}

// PublishDestinationName returns "<exchange>.<routing key>" of the command.
func (Provider) PublishDestinationName(cmd PublishCommand) string {
	return destination(cmd.Exchange, cmd.RoutingKey)
}

// ClassifyOutcome names AMQP protocol errors after their reply code.
func (Provider) ClassifyOutcome(err error) (brokermetrics.Status, string) {
	return classify(err)
}

func destination(exchange, routingKey string) string {
	if exchange == "" {
		exchange = DefaultExchangeName
	}
	return exchange + "." + routingKey
}
