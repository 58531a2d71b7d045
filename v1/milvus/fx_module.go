package milvus

import (
	"context"

	"go.uber.org/fx"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/logger"
	"github.com/docuseek/docstore/v1/metrics"
)

// FXModule wires the Milvus gateway into an Fx application: it provides
// the *Client (also bound to docstore.Gateway) and ties the session to
// the application lifecycle.
//
// Dependencies required in the container: a *milvus.Config and a
// *logger.Logger. A metrics.StoreObserver is picked up when present.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    milvus.FXModule,
//	    fx.Provide(milvus.ConfigFromEnv),
//	)
var FXModule = fx.Module("milvus",
	fx.Provide(
		NewClientWithDI,
		func(c *Client) docstore.Gateway { return c },
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// DIParams groups the container-provided dependencies for the gateway.
type DIParams struct {
	fx.In

	Config   *Config
	Logger   *logger.Logger
	Observer metrics.StoreObserver `optional:"true"`
}

// NewClientWithDI adapts NewClient to dependency injection.
func NewClientWithDI(p DIParams) (*Client, error) {
	return NewClient(Params{
		Config:   p.Config,
		Logger:   p.Logger,
		Observer: p.Observer,
	})
}

// RegisterStoreLifecycle connects the session on application start and
// tears it down on stop.
func RegisterStoreLifecycle(lc fx.Lifecycle, c *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return c.Disconnect(ctx)
		},
	})
}
