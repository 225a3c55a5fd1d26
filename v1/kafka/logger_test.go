package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorLogger(t *testing.T) {
	log := &recordingLogger{}

	ErrorLogger(context.Background(), log).Printf("failed to connect to %s: %v", "broker-1:9092", "refused")

	assert.Equal(t, []string{"Kafka internal error"}, log.messages["error"])
	require.Len(t, log.fields, 1)
	assert.Equal(t, "failed to connect to broker-1:9092: refused", log.fields[0]["error"])
}

func TestErrorLoggerWithoutArgs(t *testing.T) {
	log := &recordingLogger{}
	ErrorLogger(context.Background(), log)("100% done")
	assert.Equal(t, "100% done", log.fields[0]["error"])
}

func TestErrorLoggerNil(t *testing.T) {
	assert.NotPanics(t, func() {
		ErrorLogger(context.Background(), nil).Printf("ignored %d", 1)
	})
}
