package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the tracer client and shuts it down cleanly when the
// application stops, so buffered spans reach the collector.
//
// A tracer.Config instance must be available in the container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and releases the tracer provider on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Shutdown(ctx)
		},
	})
}
