package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry shared by all broker middlewares of a
// process and the HTTP server exposing it.
type Metrics struct {
	// Server defines the HTTP server used to expose the metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	registerer prometheus.Registerer

	mu         sync.Mutex
	listenAddr string
}

// NewMetrics creates a dedicated registry, optionally registers the default
// runtime collectors, and configures an HTTP server exposing the registry at
// cfg.Path.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "orders-consumer",
//	})
//	mw, err := rabbit.NewPrometheusMiddleware(brokermetrics.Config{
//	    Registerer: m.Registerer(),
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}
	path := cfg.Path
	if path == "" {
		path = DefaultMetricsPath
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registerer,
	}))

	return &Metrics{
		Server: &http.Server{
			Addr:    address,
			Handler: mux,
		},
		Registry:   registry,
		registerer: registerer,
	}
}

// Registerer returns the registerer broker middlewares should register
// their instruments with. It adds the service label when configured.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registerer
}

// Gatherer returns the registry as a prometheus.Gatherer.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.Registry
}

// ListenAddr returns the address the server is bound to once started, or
// the configured address before that.
func (m *Metrics) ListenAddr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listenAddr != "" {
		return m.listenAddr
	}
	return m.Server.Addr
}

func (m *Metrics) setListenAddr(addr string) {
	m.mu.Lock()
	m.listenAddr = addr
	m.mu.Unlock()
}
