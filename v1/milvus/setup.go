package milvus

import (
	"context"
	"fmt"
	"time"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/logger"
	"github.com/docuseek/docstore/v1/metrics"
	"github.com/docuseek/docstore/v1/tracer"
)

// Client implements docstore.Gateway over the Milvus Go SDK.
//
// It owns at most one logical session at a time: Connect opens it,
// Disconnect closes it, and both are idempotent. Collection handles and
// serving-tier load state are cached in memory so repeated operations
// avoid redundant round trips.
type Client struct {
	cfg      *Config
	log      *logger.Logger
	observer metrics.StoreObserver
	tracer   trace.Tracer

	api milvusclient.Client

	// collections caches resolved collection handles by name.
	collections map[string]*docstore.CollectionInfo

	// loaded tracks the one-way disk-to-memory load transition per
	// collection.
	loaded map[string]bool
}

// Params carries the dependencies for NewClient. Observer may be nil to
// disable metrics reporting.
type Params struct {
	Config   *Config
	Logger   *logger.Logger
	Observer metrics.StoreObserver
}

var _ docstore.Gateway = (*Client)(nil)

// NewClient constructs a gateway from Params. It validates the config but
// does not dial; call Connect before using any other operation.
func NewClient(p Params) (*Client, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("milvus: config is required")
	}
	if err := p.Config.Validate(); err != nil {
		return nil, fmt.Errorf("milvus: invalid config: %w", err)
	}
	if p.Logger == nil {
		p.Logger = logger.NewLogger(logger.Config{ServiceName: "docstore"})
	}

	return &Client{
		cfg:         p.Config,
		log:         p.Logger,
		observer:    p.Observer,
		tracer:      otel.Tracer(tracer.InstrumentationName),
		collections: make(map[string]*docstore.CollectionInfo),
		loaded:      make(map[string]bool),
	}, nil
}

// Connect establishes the session if not already established. Calling it
// again on an open session is a no-op returning nil.
func (c *Client) Connect(ctx context.Context) (err error) {
	ctx, done := c.instrument(ctx, "connect")
	defer func() { done(err) }()

	if c.api != nil {
		c.log.Debug("already connected", nil, map[string]interface{}{"address": c.cfg.Address()})
		return nil
	}

	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	api, err := milvusclient.NewClient(ctx, milvusclient.Config{
		Address:  c.cfg.Address(),
		Username: c.cfg.Username,
		Password: c.cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("milvus: dial %s: %w: %w", c.cfg.Address(), docstore.ErrConnection, err)
	}

	c.api = api
	c.log.Info("connected to Milvus", nil, map[string]interface{}{"address": c.cfg.Address()})
	return nil
}

// Disconnect tears down the session. Idempotent; safe to call even if
// Connect never succeeded.
func (c *Client) Disconnect(ctx context.Context) (err error) {
	_, done := c.instrument(ctx, "disconnect")
	defer func() { done(err) }()

	if c.api == nil {
		return nil
	}

	err = c.api.Close()
	c.api = nil
	c.collections = make(map[string]*docstore.CollectionInfo)
	c.loaded = make(map[string]bool)
	if err != nil {
		return fmt.Errorf("milvus: close session: %w", err)
	}
	c.log.Info("disconnected from Milvus", nil, nil)
	return nil
}

// session returns the live SDK handle or a connection error when Connect
// has not been called.
func (c *Client) session() (milvusclient.Client, error) {
	if c.api == nil {
		return nil, fmt.Errorf("milvus: not connected: %w", docstore.ErrConnection)
	}
	return c.api, nil
}

// instrument opens a span for one gateway operation and returns the
// completion callback that records metrics and span status.
func (c *Client) instrument(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "milvus."+op)
	return ctx, func(err error) {
		if c.observer != nil {
			c.observer.ObserveOp(op, metrics.StatusOf(err), start)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
