package brokermetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/logger"
)

// FXModule exposes the application logger, when one is provided, as the
// middleware Logger. Broker adapter modules depend on it.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    brokermetrics.FXModule,
//	    nats.FXModule,
//	    fx.Supply(brokermetrics.Config{AppName: "orders"}),
//	)
var FXModule = fx.Module("brokermetrics",
	fx.Provide(NewLoggerWithDI),
)

// LoggerParams groups the optional application logger.
type LoggerParams struct {
	fx.In

	Logger logger.Logger `optional:"true"`
}

// NewLoggerWithDI returns the injected application logger as a middleware
// Logger, or nil if the application has none.
func NewLoggerWithDI(params LoggerParams) Logger {
	if params.Logger == nil {
		return nil
	}
	return params.Logger
}

// MiddlewareParams groups the dependencies needed to build a Middleware
// inside an fx application. Broker adapters embed it in their own modules.
type MiddlewareParams struct {
	fx.In

	Config     Config
	Registerer prometheus.Registerer `optional:"true"`
	Logger     Logger                `optional:"true"`
}

// NewWithDI builds a Middleware from injected dependencies.
//
// The injected Registerer is used unless Config.Registerer is already set,
// so the registry owned by the metrics package is shared by every broker
// middleware in the application.
func NewWithDI[M, P any](provider SettingsProvider[M, P], params MiddlewareParams) (*Middleware[M, P], error) {
	cfg := params.Config
	if cfg.Registerer == nil {
		cfg.Registerer = params.Registerer
	}

	var opts []Option
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}

	return New(provider, cfg, opts...)
}
