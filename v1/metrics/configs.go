package metrics

const (
	// DefaultMetricsAddress is used when Config.Address is empty.
	DefaultMetricsAddress = ":9090"

	// DefaultMetricsPath is used when Config.Path is empty.
	DefaultMetricsPath = "/metrics"
)

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"   → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	//   - "127.0.0.1:0" → Pick a free port (see Metrics.ListenAddr)
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// Path is the HTTP path serving the exposition format.
	//
	// Default: "/metrics"
	Path string `yaml:"path" envconfig:"METRICS_PATH"`

	// EnableDefaultCollectors controls whether the built-in Go runtime,
	// process and build info collectors are registered.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName identifies the service exposing metrics. When set, every
	// collector registered through Metrics.Registerer carries the constant
	// label service="<ServiceName>".
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}
