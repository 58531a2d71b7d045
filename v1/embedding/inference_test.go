package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// fakeInferenceServer returns deterministic embeddings: text "t<i>" maps
// to [i, 0, 0, ...]. Responses are emitted with the index order reversed
// to prove the provider reorders by the index field.
func fakeInferenceServer(t *testing.T, dim int, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		if calls != nil {
			calls.Add(1)
		}

		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type item struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		data := make([]item, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			vec := make([]float32, dim)
			var n float32
			fmt.Sscanf(strings.TrimPrefix(req.Input[i], "t"), "%f", &n)
			vec[0] = n
			data = append(data, item{Index: i, Embedding: vec})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func newTestProvider(t *testing.T, endpoint string, dim, batchSize int) *InferenceProvider {
	t.Helper()
	p, err := newInferenceProvider(&Config{
		Endpoint:       endpoint,
		Model:          "test-embedder",
		Dimension:      dim,
		HTTPTimeoutS:   5,
		BatchSize:      batchSize,
		MaxConcurrency: 2,
	})
	require.NoError(t, err)
	return p
}

func TestEncode_PreservesOrderAcrossBatches(t *testing.T) {
	var calls atomic.Int32
	srv := fakeInferenceServer(t, 4, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 4, 2)

	texts := []string{"t0", "t1", "t2", "t3", "t4"}
	vectors, err := p.Encode(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, v := range vectors {
		require.Len(t, v, 4)
		assert.Equal(t, float32(i), v[0], "vector %d out of order", i)
	}
	// 5 texts with batch size 2 means 3 requests.
	assert.Equal(t, int32(3), calls.Load())
}

func TestEncode_EmptyInput(t *testing.T) {
	p := newTestProvider(t, "http://unused", 4, 2)
	vectors, err := p.Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestEncode_DimensionMismatch(t *testing.T) {
	srv := fakeInferenceServer(t, 3, nil)
	defer srv.Close()

	// Provider configured for 4 dimensions, server returns 3.
	p := newTestProvider(t, srv.URL, 4, 8)
	_, err := p.Encode(context.Background(), []string{"t0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestEncode_HTTPErrorSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":"model overloaded"}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 4, 8)
	_, err := p.Encode(context.Background(), []string{"t0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestEncode_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 4, 8)
	_, err := p.Encode(context.Background(), []string{"t0", "t1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 texts")
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"complete", Config{Endpoint: "http://inf", Model: "m", Dimension: 384}, true},
		{"missing endpoint", Config{Model: "m", Dimension: 384}, false},
		{"missing model", Config{Endpoint: "http://inf", Dimension: 384}, false},
		{"zero dimension", Config{Endpoint: "http://inf", Model: "m"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_ENDPOINT", "http://inference:8080")
	t.Setenv("EMBEDDING_MODEL", "all-minilm-l6-v2")
	t.Setenv("EMBEDDING_DIMENSION", "384")
	t.Setenv("EMBEDDING_BATCH_SIZE", "16")

	cfg := NewConfig()
	assert.Equal(t, "http://inference:8080", cfg.Endpoint)
	assert.Equal(t, "all-minilm-l6-v2", cfg.Model)
	assert.Equal(t, 384, cfg.Dimension)
	assert.Equal(t, 16, cfg.BatchSize)
	assert.Equal(t, 30, cfg.HTTPTimeoutS)
}
