package rabbit

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

// ErrDeliveryUnacknowledgeable is returned when a delivery has no acknowledger,
// for example when it was not received from a channel.
var ErrDeliveryUnacknowledgeable = errors.New("delivery cannot be acknowledged")

// amqpExceptionTypes maps AMQP reply codes to exception_type label values.
var amqpExceptionTypes = map[int]string{
	// Connection-level errors
	amqp.ConnectionForced:   "ConnectionForced",
	amqp.InvalidPath:        "InvalidPath",
	amqp.AccessRefused:      "AccessRefused",
	amqp.NotFound:           "NotFound",
	amqp.ResourceLocked:     "ResourceLocked",
	amqp.PreconditionFailed: "PreconditionFailed",

	// Channel-level errors
	amqp.ContentTooLarge: "ContentTooLarge",
	amqp.NoRoute:         "NoRoute",
	amqp.NoConsumers:     "NoConsumers",
	amqp.ChannelError:    "ChannelError",
	amqp.UnexpectedFrame: "UnexpectedFrame",
	amqp.ResourceError:   "ResourceError",
	amqp.NotAllowed:      "NotAllowed",
	amqp.NotImplemented:  "NotImplemented",
	amqp.InternalError:   "InternalError",

	// Frame-level errors
	amqp.SyntaxError:    "SyntaxError",
	amqp.CommandInvalid: "CommandInvalid",
	amqp.FrameError:     "FrameError",
}

// ExceptionType returns the exception_type label value for err. AMQP
// protocol errors are named after their reply code, every other error
// follows brokermetrics.ExceptionType.
func ExceptionType(err error) string {
	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		if name, ok := amqpExceptionTypes[amqpErr.Code]; ok {
			return name
		}
		return "AMQPError"
	}
	return brokermetrics.ExceptionType(err)
}

// classify is ClassifyOutcome for RabbitMQ.
func classify(err error) (brokermetrics.Status, string) {
	if err == nil {
		return brokermetrics.StatusSuccess, ""
	}

	// Errors that name their own exception type win over the reply code.
	var typer brokermetrics.ExceptionTyper
	if errors.As(err, &typer) {
		return brokermetrics.StatusError, typer.ExceptionType()
	}
	return brokermetrics.StatusError, ExceptionType(err)
}
