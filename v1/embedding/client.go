package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, batching)
// from the application layer.
type Client struct {
	provider Encoder
}

// NewClient constructs a Client from Config. It validates the config and
// internally constructs the inference provider. Application code should
// depend on *Client or the Encoder interface, not on InferenceProvider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p}, nil
}

// Encode implements Encoder by delegating to the provider.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	return c.provider.Encode(ctx, texts)
}

// Dimension implements Encoder.
func (c *Client) Dimension() int {
	return c.provider.Dimension()
}

// Close releases any internal resources used by the provider. Currently a
// no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
