package brokermetrics

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// Status is the outcome of a processed or published message.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// String returns the label value of the status.
func (s Status) String() string {
	return string(s)
}

// PanicExceptionType is the exception_type recorded when a wrapped call panics.
const PanicExceptionType = "panic"

// PanicError carries a recovered panic value through outcome classification.
// The middleware re-panics with Value after recording it.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ExceptionType implements ExceptionTyper.
func (e PanicError) ExceptionType() string {
	return PanicExceptionType
}

// GoexitExceptionType is the exception_type recorded when a wrapped call
// ends its goroutine with runtime.Goexit, e.g. through t.FailNow.
const GoexitExceptionType = "goexit"

// GoexitError is the outcome recorded for a wrapped call that never returned
// because its goroutine exited.
type GoexitError struct{}

func (GoexitError) Error() string {
	return "wrapped call exited its goroutine without returning"
}

// ExceptionType implements ExceptionTyper.
func (GoexitError) ExceptionType() string {
	return GoexitExceptionType
}

// ExceptionTyper lets an error choose its own exception_type label value.
type ExceptionTyper interface {
	ExceptionType() string
}

// ClassifyError maps the outcome of a wrapped call to a status and an
// exception type. A nil error is a success with no exception type.
func ClassifyError(err error) (Status, string) {
	if err == nil {
		return StatusSuccess, ""
	}
	return StatusError, ExceptionType(err)
}

// ExceptionType returns the exception_type label value for err.
//
// The first error in the chain implementing ExceptionTyper decides. Context
// cancellation and deadline errors map to "Canceled" and "DeadlineExceeded".
// Otherwise the unqualified type name of the first error in the chain that
// is not a plain fmt.Errorf or errors.Join wrapper is used, so
// fmt.Errorf("send: %w", TimeoutError{}) yields "TimeoutError".
func ExceptionType(err error) string {
	if err == nil {
		return ""
	}

	var typer ExceptionTyper
	if errors.As(err, &typer) {
		return typer.ExceptionType()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "Canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	}

	for {
		if !isAnnotation(err) {
			return typeName(err)
		}
		next := unwrapFirst(err)
		if next == nil {
			return typeName(err)
		}
		err = next
	}
}

// isAnnotation reports whether err only adds context to the errors it wraps.
func isAnnotation(err error) bool {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.PkgPath() + "." + t.Name() {
	case "fmt.wrapError", "fmt.wrapErrors", "errors.joinError":
		return true
	}
	return false
}

func unwrapFirst(err error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return u.Unwrap()
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// SettingsProvider supplies broker-specific label values to the middleware.
// M is the broker's inbound message type, P its outbound publish command.
//
// One implementation exists per broker adapter. Implementations must be
// stateless across messages and safe for concurrent use.
type SettingsProvider[M, P any] interface {
	// BrokerName returns the static broker identifier used as the broker label.
	BrokerName() string

	// MessagingDestinationName returns the handler label for an inbound message.
	MessagingDestinationName(msg M) string

	// ReceivedPayloadSize returns the message body size in bytes, 0 if unknown.
	ReceivedPayloadSize(msg M) int

	// PublishDestinationName returns the destination label for an outbound command.
	PublishDestinationName(cmd P) string

	// ClassifyOutcome maps the error returned by the wrapped call to a status
	// and, for failures, an exception type.
	ClassifyOutcome(err error) (Status, string)
}

// BatchProvider is implemented by providers whose inbound message carries
// several broker messages. The count is used as the amount for the received,
// in-process and processed instruments.
type BatchProvider[M any] interface {
	MessagesCount(msg M) int
}

// PublishBatchProvider is implemented by providers whose publish command may
// carry several messages.
type PublishBatchProvider[P any] interface {
	PublishedMessagesCount(cmd P) int
}

// BaseProvider implements ClassifyOutcome with ClassifyError. Broker
// providers embed it.
type BaseProvider struct{}

// ClassifyOutcome implements SettingsProvider.
func (BaseProvider) ClassifyOutcome(err error) (Status, string) {
	return ClassifyError(err)
}
