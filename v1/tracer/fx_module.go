package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Drakorgaur/faststream/v1/logger"
)

// FXModule provides *Tracer and shuts it down when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Supply(
//	        logger.Config{EnableTracing: true},
//	        tracer.Config{ServiceName: "orders"},
//	    ),
//	)
//
// Dependencies required by this module:
// - A tracer.Config instance
// - A logger.Logger instance (optional)
var FXModule = fx.Module("tracer",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterTracerLifecycle),
)

// Params groups the dependencies of NewClientWithDI.
type Params struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewClientWithDI creates a Tracer from injected dependencies.
func NewClientWithDI(p Params) (*Tracer, error) {
	return NewClient(p.Config, p.Logger)
}

// RegisterTracerLifecycle flushes and stops the tracer on application stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if t.logger != nil {
				t.logger.Info("Shutting down tracer", nil, nil)
			}
			return t.Shutdown(ctx)
		},
	})
}
