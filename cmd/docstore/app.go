package main

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/documents"
	"github.com/docuseek/docstore/v1/embedding"
	"github.com/docuseek/docstore/v1/logger"
	"github.com/docuseek/docstore/v1/metrics"
	"github.com/docuseek/docstore/v1/milvus"
	"github.com/docuseek/docstore/v1/search"
	"github.com/docuseek/docstore/v1/tracer"
)

const appStartTimeout = 30 * time.Second

// services bundles everything a command can need. Store-only commands
// leave Documents and Search nil.
type services struct {
	Store     docstore.Gateway
	Documents *documents.Service
	Search    *search.Service
}

// baseModules wires the ambient stack shared by every command.
func baseModules(cfg *AppConfig) []fx.Option {
	opts := []fx.Option{
		fx.NopLogger,
		logger.FXModule,
		tracer.FXModule,
		milvus.FXModule,
		fx.Provide(
			func() logger.Config { return cfg.loggerConfig() },
			func() tracer.Config { return cfg.tracerConfig() },
			func() *milvus.Config { return cfg.Milvus },
		),
	}
	if cfg.MetricsEnabled {
		opts = append(opts,
			metrics.FXModule,
			fx.Provide(func() metrics.Config {
				return metrics.Config{
					Address:                 cfg.MetricsAddress,
					ServiceName:             "docstore",
					EnableDefaultCollectors: true,
				}
			}),
		)
	}
	return opts
}

// storeAppOptions assembles the graph for commands that never touch
// embeddings, so no inference endpoint is required for them.
func storeAppOptions(cfg *AppConfig, store *docstore.Gateway) []fx.Option {
	return append(baseModules(cfg), fx.Populate(store))
}

// serviceAppOptions additionally wires the embedding encoder and the
// document and search services, for commands that turn text into
// vectors.
func serviceAppOptions(cfg *AppConfig, svc *services) []fx.Option {
	return append(baseModules(cfg),
		embedding.FXModule,
		documents.FXModule,
		search.FXModule,
		fx.Provide(func() *embedding.Config { return cfg.Embedding }),
		fx.Populate(&svc.Store, &svc.Documents, &svc.Search),
	)
}

// runWithStore runs fn against a connected store gateway.
func runWithStore(cfg *AppConfig, fn func(ctx context.Context, svc *services) error) error {
	var store docstore.Gateway

	return runApp(fx.New(storeAppOptions(cfg, &store)...), func(ctx context.Context) error {
		return fn(ctx, &services{Store: store})
	})
}

func runWithServices(cfg *AppConfig, fn func(ctx context.Context, svc *services) error) error {
	if err := cfg.Embedding.Validate(); err != nil {
		return err
	}

	var svc services

	return runApp(fx.New(serviceAppOptions(cfg, &svc)...), func(ctx context.Context) error {
		return fn(ctx, &svc)
	})
}

func runApp(app *fx.App, fn func(ctx context.Context) error) error {
	startCtx, cancel := context.WithTimeout(context.Background(), appStartTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(context.Background())

	stopCtx, cancelStop := context.WithTimeout(context.Background(), appStartTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
