package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible
// inference service (no /v1/embeddings appended); the provider appends
// request paths itself.

// Config holds the inference provider settings.
type Config struct {
	// Endpoint is the base URL of the inference API.
	Endpoint string

	// Model is the embedding model name requested from the API.
	Model string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Dimension is the vector length the model produces. Every returned
	// vector is checked against it.
	Dimension int

	// HTTPTimeoutS is the per-request HTTP timeout in seconds (default 30).
	HTTPTimeoutS int

	// BatchSize is the maximum number of texts per request (default 64).
	BatchSize int

	// MaxConcurrency bounds concurrent batch requests (default 4).
	MaxConcurrency int
}

// NewConfig reads the configuration from environment variables, applying
// defaults for everything but the endpoint, model, and dimension.
func NewConfig() *Config {
	return &Config{
		Endpoint:       os.Getenv("EMBEDDING_ENDPOINT"),
		Model:          os.Getenv("EMBEDDING_MODEL"),
		APIKey:         os.Getenv("EMBEDDING_API_KEY"),
		Dimension:      envInt("EMBEDDING_DIMENSION", 0),
		HTTPTimeoutS:   envInt("EMBEDDING_HTTP_TIMEOUT_SECONDS", 30),
		BatchSize:      envInt("EMBEDDING_BATCH_SIZE", 64),
		MaxConcurrency: envInt("EMBEDDING_MAX_CONCURRENCY", 4),
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding: EMBEDDING_DIMENSION must be positive, got %d", c.Dimension)
	}
	return nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
