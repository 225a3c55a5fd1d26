package brokermetrics

import "errors"

// Configuration errors returned while building a Container or Middleware.
// They are never returned per message.
var (
	// ErrNilRegisterer is returned when no Prometheus registerer is supplied
	ErrNilRegisterer = errors.New("prometheus registerer is nil")

	// ErrInvalidBuckets is returned when a bucket override is not strictly increasing
	ErrInvalidBuckets = errors.New("histogram buckets must be strictly increasing")

	// ErrLabelSchemaMismatch is returned when an instrument is already registered
	// under the same name with a different label set or an incompatible type
	ErrLabelSchemaMismatch = errors.New("instrument already registered with a different schema")

	// ErrInvalidConfig is returned for any other rejected instrument definition,
	// such as an invalid metric or label name
	ErrInvalidConfig = errors.New("invalid metrics configuration")
)
