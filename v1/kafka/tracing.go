package kafka

import (
	"sort"

	"github.com/segmentio/kafka-go"
)

// withTraceHeaders returns copies of msgs carrying carrier as headers.
// Existing headers with the same keys are replaced.
func withTraceHeaders(msgs []kafka.Message, carrier map[string]string) []kafka.Message {
	if len(carrier) == 0 {
		return msgs
	}

	keys := make([]string, 0, len(carrier))
	for k := range carrier {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		headers := make([]kafka.Header, 0, len(msg.Headers)+len(keys))
		for _, h := range msg.Headers {
			if _, ok := carrier[h.Key]; !ok {
				headers = append(headers, h)
			}
		}
		for _, k := range keys {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(carrier[k])})
		}
		msg.Headers = headers
		out[i] = msg
	}
	return out
}

// traceCarrier reads message headers as a trace context carrier.
func traceCarrier(headers []kafka.Header) map[string]string {
	carrier := make(map[string]string, len(headers))
	for _, h := range headers {
		carrier[h.Key] = string(h.Value)
	}
	return carrier
}
