// Package metrics owns the Prometheus registry of a process and exposes it
// over HTTP.
//
// Broker middlewares never create their own registry. They register into the
// Registerer provided here, so the instruments of every broker used by the
// process end up on one /metrics endpoint.
//
// Core Features:
//   - A dedicated registry per Metrics instance
//   - Optional Go runtime, process and build info collectors
//   - Optional constant service label on every registered collector
//   - Integration with go.uber.org/fx for lifecycle management
//
// # Direct Usage (Without FX)
//
//	import "github.com/Drakorgaur/faststream/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "orders-consumer",
//	})
//
//	mw, err := nats.NewPrometheusMiddleware(brokermetrics.Config{
//		Registerer: m.Registerer(),
//	})
//
//	go m.Server.ListenAndServe()
//
// # FX Module Integration
//
// FXModule provides *Metrics, prometheus.Registerer and prometheus.Gatherer.
// The adapter modules pick up the Registerer automatically:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		brokermetrics.FXModule,
//		rabbit.FXModule,
//		fx.Supply(
//			logger.Config{Level: logger.Info},
//			metrics.Config{Address: ":9090"},
//			brokermetrics.Config{AppName: "orders"},
//		),
//	)
//	app.Run()
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Listen address
//	METRICS_PATH=/metrics                      # Exposition path
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Runtime and process metrics
//	METRICS_SERVICE_NAME=orders-consumer       # Adds service label to all metrics
//
// # Thread Safety
//
// All methods on Metrics are safe for concurrent use.
package metrics
