package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger is the subset of logger.Logger used by this package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider. It is safe for concurrent use.
type Tracer struct {
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// Option configures a Tracer.
type Option func(*[]sdktrace.TracerProviderOption)

// WithSpanProcessor adds a span processor, e.g. a tracetest.SpanRecorder.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(opts *[]sdktrace.TracerProviderOption) {
		*opts = append(*opts, sdktrace.WithSpanProcessor(sp))
	}
}

// NewClient creates a Tracer and installs it as the global OpenTelemetry
// tracer provider together with a W3C trace context and baggage propagator.
//
// logger may be nil.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{
//	    ServiceName: "orders-consumer",
//	    AppEnv:      "production",
//	}, log)
//	if err != nil {
//	    return err
//	}
//	ctx, span := t.StartSpan(ctx, "handle-order")
//	defer span.End()
func NewClient(cfg Config, logger Logger, opts ...Option) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			if logger != nil {
				logger.Error("Failed to create trace exporter", err, nil)
			}
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))
	for _, opt := range opts {
		opt(&options)
	}

	t := &Tracer{
		provider:   sdktrace.NewTracerProvider(options...),
		propagator: propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		logger:     logger,
	}

	otel.SetTracerProvider(t.provider)
	otel.SetTextMapPropagator(t.propagator)

	if logger != nil {
		logger.Info("Tracer initialized", nil, map[string]interface{}{
			"service": cfg.ServiceName,
			"export":  cfg.EnableExport,
		})
	}

	return t, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
