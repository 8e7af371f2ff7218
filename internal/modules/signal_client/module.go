package signalclient

import (
	"finfx_sdk/internal/modules/signal_client/service"

	"go.uber.org/fx"
)

// Module provides the signal client as *service.Client.
func Module() fx.Option {
	return fx.Module("signal_client",
		fx.Provide(
			service.NewClient,
		),
	)
}
