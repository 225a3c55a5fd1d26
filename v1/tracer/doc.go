// Package tracer configures OpenTelemetry tracing for broker applications.
//
// A Tracer owns an SDK TracerProvider, installed globally on creation, and
// optionally exports spans to an OTLP HTTP collector. Spans started through
// it are what logger.LoggerClient reads trace_id and span_id from when
// logger.Config.EnableTracing is set.
//
// # Propagation
//
// GetCarrier and SetCarrierOnContext move the W3C trace context between a
// context and a flat header map, which maps directly onto AMQP table
// headers, Kafka record headers and NATS message headers:
//
//	headers := t.GetCarrier(ctx)
//	// ... set headers on the outgoing message
//
//	ctx = t.SetCarrierOnContext(ctx, headersOf(msg))
//	ctx, span := t.StartSpan(ctx, "consume")
//	defer span.End()
//
// # FX integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Supply(logger.Config{EnableTracing: true}, tracer.Config{ServiceName: "orders"}),
//	)
package tracer
