package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageFetcher is the part of *kafka.Reader used by Consumer.
type MessageFetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// MessageWriter is the part of *kafka.Writer used by Publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	_ MessageFetcher = (*kafka.Reader)(nil)
	_ MessageWriter  = (*kafka.Writer)(nil)
)
