package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// InferenceProvider computes embeddings via the OpenAI-compatible
// /v1/embeddings endpoint of an inference service.
type InferenceProvider struct {
	cfg        *Config
	baseURL    string
	httpClient *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	return &InferenceProvider{
		cfg: cfg,
		// Remove trailing slash if user added it.
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// Dimension implements Encoder.
func (p *InferenceProvider) Dimension() int {
	return p.cfg.Dimension
}

// Encode implements Encoder. Inputs beyond BatchSize are split into
// batches requested concurrently (bounded by MaxConcurrency); each batch
// writes into its own slice region, so the output keeps input order.
func (p *InferenceProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batchSize := p.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	out := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	limit := p.cfg.MaxConcurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		start, batch := start, texts[start:end]

		g.Go(func() error {
			vectors, err := p.encodeBatch(gctx, batch)
			if err != nil {
				return err
			}
			copy(out[start:], vectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// encodeBatch issues one embeddings request and orders the response by
// its index field, which the API does not guarantee to be sorted.
func (p *InferenceProvider) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := map[string]any{
		"model": p.cfg.Model,
		"input": texts,
	}

	var parsed struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/v1/embeddings", p.baseURL)
	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("inference: got %d embeddings for %d texts", len(parsed.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("inference: embedding index %d out of range", d.Index)
		}
		if len(d.Embedding) != p.cfg.Dimension {
			return nil, fmt.Errorf("inference: model returned dimension %d, configured %d",
				len(d.Embedding), p.cfg.Dimension)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("inference: missing embedding for input %d", i)
		}
	}
	return vectors, nil
}
