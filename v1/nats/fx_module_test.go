package nats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Drakorgaur/faststream/v1/brokermetrics"
)

func TestFXModuleSharesInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()

	var (
		mw    *Middleware
		batch *BatchMiddleware
	)

	app := fxtest.New(t,
		brokermetrics.FXModule,
		FXModule,
		fx.Supply(brokermetrics.Config{AppName: "app"}),
		fx.Provide(func() prometheus.Registerer { return reg }),
		fx.Populate(&mw, &batch),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, mw)
	require.NotNil(t, batch)
	assert.Same(t, mw.Container().ReceivedMessagesTotal, batch.Container().ReceivedMessagesTotal)
}
