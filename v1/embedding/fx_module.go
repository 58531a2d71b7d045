package embedding

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the embedding system into Fx.
//
// It provides the *Client (also bound to Encoder) and registers the
// shutdown hook. A *embedding.Config must be available in the
// container, e.g. via fx.Provide(embedding.NewConfig).
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewClient, // -> *Client
		func(c *Client) Encoder { return c },
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle ensures the Client and its provider are
// cleaned up on application shutdown.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
