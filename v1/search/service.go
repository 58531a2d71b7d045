package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/embedding"
	"github.com/docuseek/docstore/v1/logger"
)

// Service answers similarity queries over ingested documents.
type Service struct {
	store docstore.Gateway
	enc   embedding.Encoder
	log   *logger.Logger
}

// NewService wires the search service. A nil logger falls back to a
// default one.
func NewService(store docstore.Gateway, enc embedding.Encoder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewLogger(logger.Config{ServiceName: "docstore"})
	}
	return &Service{store: store, enc: enc, log: log}
}

// SearchDocuments embeds the query text and returns the topK nearest
// documents ordered best-first. topK is passed through to the store,
// which rejects non-positive values.
func (s *Service) SearchDocuments(ctx context.Context, query string, topK int) ([]docstore.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search: query is empty: %w", docstore.ErrValidation)
	}

	vectors, err := s.enc.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("search: embed query: %w", err)
	}

	results, err := s.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return nil, err
	}

	s.log.Debug("similarity search served", nil, map[string]interface{}{
		"top_k":   topK,
		"results": len(results),
	})
	return results, nil
}
