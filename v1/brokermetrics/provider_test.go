package brokermetrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type notFoundError struct {
	key string
}

func (e *notFoundError) Error() string { return e.key + " not found" }

func TestExceptionType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "value type", err: TimeoutError{}, want: "TimeoutError"},
		{name: "pointer type", err: &notFoundError{key: "order"}, want: "notFoundError"},
		{name: "wrapped", err: fmt.Errorf("publish: %w", TimeoutError{}), want: "TimeoutError"},
		{name: "wrapped twice", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", &notFoundError{})), want: "notFoundError"},
		{name: "multiple wraps", err: fmt.Errorf("%w and %w", TimeoutError{}, io.EOF), want: "TimeoutError"},
		{name: "joined", err: errors.Join(&notFoundError{}, TimeoutError{}), want: "notFoundError"},
		{name: "plain", err: errors.New("failed"), want: "errorString"},
		{name: "no wrap verb", err: fmt.Errorf("failed: %v", TimeoutError{}), want: "errorString"},
		{name: "canceled", err: context.Canceled, want: "Canceled"},
		{name: "wrapped canceled", err: fmt.Errorf("handler: %w", context.Canceled), want: "Canceled"},
		{name: "deadline", err: context.DeadlineExceeded, want: "DeadlineExceeded"},
		{name: "typer", err: &codedError{code: "Throttled"}, want: "Throttled"},
		{name: "wrapped typer", err: fmt.Errorf("send: %w", &codedError{code: "Throttled"}), want: "Throttled"},
		{name: "panic", err: PanicError{Value: "boom"}, want: PanicExceptionType},
		{name: "goexit", err: GoexitError{}, want: GoexitExceptionType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExceptionType(tt.err))
		})
	}
}

func TestClassifyError(t *testing.T) {
	status, exceptionType := ClassifyError(nil)
	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, exceptionType)

	status, exceptionType = ClassifyError(TimeoutError{})
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "TimeoutError", exceptionType)

	status, exceptionType = BaseProvider{}.ClassifyOutcome(io.EOF)
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "errorString", exceptionType)
}

func TestPanicError(t *testing.T) {
	err := PanicError{Value: 42}
	assert.Equal(t, "panic: 42", err.Error())
	assert.Equal(t, "panic", err.ExceptionType())
	assert.Equal(t, "error", StatusError.String())
}
