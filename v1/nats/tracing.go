package nats

import (
	"maps"

	natsgo "github.com/nats-io/nats.go"
)

// withTraceHeaders returns a copy of header with carrier set.
func withTraceHeaders(header natsgo.Header, carrier map[string]string) natsgo.Header {
	if len(carrier) == 0 {
		return header
	}

	out := make(natsgo.Header, len(header)+len(carrier))
	maps.Copy(out, header)
	for k, v := range carrier {
		out[k] = []string{v}
	}
	return out
}

// traceCarrier reads the first value of each header as a trace context carrier.
func traceCarrier(header natsgo.Header) map[string]string {
	carrier := make(map[string]string, len(header))
	for k, values := range header {
		if len(values) > 0 {
			carrier[k] = values[0]
		}
	}
	return carrier
}
