package nats

import natsgo "github.com/nats-io/nats.go"

// MsgSubscriber is the part of *nats.Conn used to register handlers.
type MsgSubscriber interface {
	Subscribe(subject string, cb natsgo.MsgHandler) (*natsgo.Subscription, error)
	QueueSubscribe(subject, queue string, cb natsgo.MsgHandler) (*natsgo.Subscription, error)
}

// MsgPublisher is the part of *nats.Conn used to send messages.
type MsgPublisher interface {
	PublishMsg(msg *natsgo.Msg) error
}

// BatchFetcher is the part of a pull *nats.Subscription used to fetch batches.
type BatchFetcher interface {
	Fetch(batch int, opts ...natsgo.PullOpt) ([]*natsgo.Msg, error)
}

var (
	_ MsgSubscriber = (*natsgo.Conn)(nil)
	_ MsgPublisher  = (*natsgo.Conn)(nil)
	_ BatchFetcher  = (*natsgo.Subscription)(nil)
)
