package tracer

// Config defines the tracer configuration.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as deployment.environment, e.g. "production".
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends finished spans to an OTLP HTTP collector. The
	// endpoint is read from the standard OTEL_EXPORTER_OTLP_* variables.
	// Without it spans are recorded in-process only, which is enough for
	// trace IDs in logs.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
