package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/logger"
)

// FXModule defines the Fx module for the metrics package.
//
// The module provides *Metrics together with its prometheus.Registerer and
// prometheus.Gatherer, so every broker middleware in the application
// registers into the same registry, and serves it over HTTP for the
// application's lifetime.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    rabbit.FXModule,
//	    fx.Supply(
//	        logger.Config{Level: logger.Info},
//	        metrics.Config{Address: ":9090", ServiceName: "orders"},
//	        brokermetrics.Config{AppName: "orders"},
//	    ),
//	)
//
// Dependencies required by this module:
// - A metrics.Config instance must be available in the dependency injection container
// - A logger.Logger instance is optional but recommended for startup/shutdown logs
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) prometheus.Registerer { return m.Registerer() },
		func(m *Metrics) prometheus.Gatherer { return m.Gatherer() },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// LifecycleParams groups the dependencies of RegisterMetricsLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle
// of the Prometheus metrics HTTP server.
//
// OnStart binds the listener synchronously, so a taken port fails the
// application start, then serves in a background goroutine. OnStop shuts the
// server down gracefully.
func RegisterMetricsLifecycle(p LifecycleParams) {
	m := p.Metrics
	log := p.Logger

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", m.Server.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", m.Server.Addr, err)
			}
			m.setListenAddr(ln.Addr().String())

			if log != nil {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.ListenAddr(),
				})
			}

			go func() {
				if err := m.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && log != nil {
					log.Error("Error serving Prometheus metrics", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("Shutting down Prometheus metrics server", nil, nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
