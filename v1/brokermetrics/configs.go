package brokermetrics

import "github.com/prometheus/client_golang/prometheus"

// DefaultMetricsPrefix is prepended to every instrument name when no prefix is configured.
const DefaultMetricsPrefix = "faststream"

// VersionLabel is the extra label applied when UseVersionLabel is set and no
// explicit extra labels are configured.
const VersionLabel = "version"

// Config defines how the instrumentation middleware names and labels its instruments.
type Config struct {
	// AppName is the value of the app_name label on every sample.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "app_name" key
	//   - Environment variable METRICS_APP_NAME
	//
	// Default: the metrics prefix
	AppName string `yaml:"app_name" envconfig:"METRICS_APP_NAME"`

	// MetricsPrefix is prepended to every instrument name, e.g.
	// "faststream" -> faststream_received_messages_total.
	//
	// Two middlewares configured with the same prefix against the same
	// registerer share their instruments.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "metrics_prefix" key
	//   - Environment variable METRICS_PREFIX
	//
	// Default: "faststream"
	MetricsPrefix string `yaml:"metrics_prefix" envconfig:"METRICS_PREFIX"`

	// ReceivedMessagesSizeBuckets overrides DefaultSizeBuckets for the
	// received_messages_size_bytes histogram. Must be strictly increasing.
	ReceivedMessagesSizeBuckets []float64 `yaml:"received_messages_size_buckets" envconfig:"METRICS_RECEIVED_MESSAGES_SIZE_BUCKETS"`

	// UseVersionLabel adds a "version" label holding the module version.
	// It only applies when ExtraLabels is empty; explicit extra labels win.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "use_version_label" key
	//   - Environment variable METRICS_USE_VERSION_LABEL
	UseVersionLabel bool `yaml:"use_version_label" envconfig:"METRICS_USE_VERSION_LABEL"`

	// ExtraLabels are merged into every observation. Names are fixed for the
	// lifetime of the middleware and become part of every instrument's schema.
	ExtraLabels map[string]string `yaml:"extra_labels" envconfig:"METRICS_EXTRA_LABELS"`

	// Registerer is the shared collector registry. It is owned by the caller
	// and may be shared between middlewares attached to different brokers.
	Registerer prometheus.Registerer `yaml:"-" envconfig:"-"`
}

// resolved applies defaults and returns the app name, prefix and extra labels
// the middleware will actually use.
func (c Config) resolved() (appName, prefix string, extra map[string]string) {
	prefix = c.MetricsPrefix
	if prefix == "" {
		prefix = DefaultMetricsPrefix
	}

	appName = c.AppName
	if appName == "" {
		appName = prefix
	}

	switch {
	case len(c.ExtraLabels) > 0:
		extra = c.ExtraLabels
	case c.UseVersionLabel:
		extra = map[string]string{VersionLabel: Version()}
	default:
		extra = map[string]string{}
	}

	return appName, prefix, extra
}
