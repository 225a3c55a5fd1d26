// Package logger provides structured logging for the broker adapters and the
// applications embedding them.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides both *LoggerClient and Logger interface for dependency injection
//
// The broker adapters declare their own, smaller Logger interfaces
// (the *WithContext methods only) which *LoggerClient satisfies.
//
// # Direct Usage (Without FX)
//
//	import "github.com/Drakorgaur/faststream/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "orders-consumer",
//		EnableTracing: true,
//	})
//
//	consumer := rabbit.NewConsumer(ch, mw).WithLogger(log)
//
//	// trace_id and span_id are added from the span in ctx
//	log.InfoWithContext(ctx, "Consumer started", nil, map[string]interface{}{
//		"queue": "orders",
//	})
//
// An existing *zap.Logger, e.g. from zaptest, can be wrapped with NewFromZap.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule, // Provides *LoggerClient and logger.Logger
//		fx.Supply(logger.Config{Level: logger.Info}),
//		fx.Invoke(func(log *logger.LoggerClient) {
//			log.Info("Service started", nil, nil)
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=orders      # "service" field on every entry
//	LOGGER_ENABLE_TRACING=true      # Add trace_id/span_id in *WithContext methods
//
// # Tracing Integration
//
// When tracing is enabled, the *WithContext methods extract the OpenTelemetry
// span context from ctx and add:
//   - trace_id: The OpenTelemetry trace ID
//   - span_id: The OpenTelemetry span ID
//
// Contexts without a valid span add nothing.
//
// # Thread Safety
//
// All methods on LoggerClient are safe for concurrent use by multiple
// goroutines.
package logger
