package rabbit

import (
	"maps"

	amqp "github.com/rabbitmq/amqp091-go"
)

// withTraceHeaders returns a copy of headers with carrier added.
func withTraceHeaders(headers amqp.Table, carrier map[string]string) amqp.Table {
	if len(carrier) == 0 {
		return headers
	}

	out := make(amqp.Table, len(headers)+len(carrier))
	maps.Copy(out, headers)
	for k, v := range carrier {
		out[k] = v
	}
	return out
}

// traceCarrier reads the string headers of a delivery as a trace context
// carrier. Other header types cannot hold trace context and are skipped.
func traceCarrier(headers amqp.Table) map[string]string {
	carrier := make(map[string]string, len(headers))
	for k, v := range headers {
		switch val := v.(type) {
		case string:
			carrier[k] = val
		case []byte:
			carrier[k] = string(val)
		}
	}
	return carrier
}
