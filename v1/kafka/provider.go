package kafka

import (
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// BrokerName is the broker label value for Kafka.
const BrokerName = "kafka"

// Provider supplies label values for Kafka messages. Handler and destination
// labels are topic names.
type Provider struct{}

var (
	_ brokermetrics.SettingsProvider[kafka.Message, PublishCommand] = Provider{}
	_ brokermetrics.PublishBatchProvider[PublishCommand]            = Provider{}
)

// BrokerName implements brokermetrics.SettingsProvider.
func (Provider) BrokerName() string {
	return BrokerName
}

// MessagingDestinationName returns the topic the message was read from.
func (Provider) MessagingDestinationName(msg kafka.Message) string {
	return msg.Topic
}

// ReceivedPayloadSize returns the size of the message value.
func (Provider) ReceivedPayloadSize(msg kafka.Message) int {
	return len(msg.Value)
}

// PublishDestinationName returns the command topic, falling back to the
// topic of the first message.
func (Provider) PublishDestinationName(cmd PublishCommand) string {
	if cmd.Topic != "" {
		return cmd.Topic
	}
	if len(cmd.Messages) > 0 {
		return cmd.Messages[0].Topic
	}
	return ""
}

// PublishedMessagesCount implements brokermetrics.PublishBatchProvider.
func (Provider) PublishedMessagesCount(cmd PublishCommand) int {
	return len(cmd.Messages)
}

// ClassifyOutcome names Kafka protocol errors after their error code title,
// e.g. kafka.UnknownTopicOrPartition -> "UnknownTopicOrPartition".
func (Provider) ClassifyOutcome(err error) (brokermetrics.Status, string) {
	if err == nil {
		return brokermetrics.StatusSuccess, ""
	}
	return brokermetrics.StatusError, ExceptionType(err)
}

// ExceptionType returns the exception_type label value for err.
func ExceptionType(err error) string {
	var typer brokermetrics.ExceptionTyper
	if errors.As(err, &typer) {
		return typer.ExceptionType()
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		if title := strings.ReplaceAll(kafkaErr.Title(), " ", ""); title != "" {
			return title
		}
	}

	return brokermetrics.ExceptionType(err)
}
