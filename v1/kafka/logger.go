package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// ErrorLogger bridges kafka-go's printf-style internal error logging to a
// structured Logger. Set it on kafka.ReaderConfig.ErrorLogger or
// kafka.Writer.ErrorLogger. A nil logger discards the messages.
func ErrorLogger(ctx context.Context, logger Logger) kafka.LoggerFunc {
	return kafka.LoggerFunc(func(msg string, args ...interface{}) {
		if logger == nil {
			return
		}

		formattedMsg := msg
		if len(args) > 0 {
			formattedMsg = fmt.Sprintf(msg, args...)
		}
		logger.ErrorWithContext(ctx, "Kafka internal error", nil, map[string]interface{}{
			"error": formattedMsg,
		})
	})
}
