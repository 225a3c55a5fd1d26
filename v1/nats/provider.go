package nats

import (
	natsgo "github.com/nats-io/nats.go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// BrokerName is the broker label value for NATS.
const BrokerName = "nats"

// Provider supplies label values for single NATS messages. The handler and
// destination labels are the message subject.
type Provider struct {
	brokermetrics.BaseProvider
}

var _ brokermetrics.SettingsProvider[*natsgo.Msg, *natsgo.Msg] = Provider{}

// BrokerName implements brokermetrics.SettingsProvider.
func (Provider) BrokerName() string {
	return BrokerName
}

// MessagingDestinationName returns the subject the message was received on.
func (Provider) MessagingDestinationName(msg *natsgo.Msg) string {
	if msg == nil {
		return ""
	}
	return msg.Subject
}

// ReceivedPayloadSize returns the size of the message data.
func (Provider) ReceivedPayloadSize(msg *natsgo.Msg) int {
	if msg == nil {
		return 0
	}
	return len(msg.Data)
}

// PublishDestinationName returns the subject the message is published to.
func (Provider) PublishDestinationName(msg *natsgo.Msg) string {
	if msg == nil {
		return ""
	}
	return msg.Subject
}

// BatchProvider supplies label values for batches fetched from a pull
// subscription. A batch counts as len(batch) messages and its size is the
// sum of the payloads. The handler label is the subject of the first message.
type BatchProvider struct {
	Provider
}

var (
	_ brokermetrics.SettingsProvider[[]*natsgo.Msg, *natsgo.Msg] = BatchProvider{}
	_ brokermetrics.BatchProvider[[]*natsgo.Msg]                 = BatchProvider{}
)

// MessagingDestinationName returns the subject of the first message in the batch.
func (p BatchProvider) MessagingDestinationName(batch []*natsgo.Msg) string {
	if len(batch) == 0 {
		return ""
	}
	return p.Provider.MessagingDestinationName(batch[0])
}

// ReceivedPayloadSize returns the combined data size of the batch.
func (p BatchProvider) ReceivedPayloadSize(batch []*natsgo.Msg) int {
	size := 0
	for _, msg := range batch {
		size += p.Provider.ReceivedPayloadSize(msg)
	}
	return size
}

// MessagesCount implements brokermetrics.BatchProvider.
func (BatchProvider) MessagesCount(batch []*natsgo.Msg) int {
	return len(batch)
}
