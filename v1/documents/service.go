package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/embedding"
	"github.com/docuseek/docstore/v1/logger"
)

// Service ingests, replaces, and deletes documents. Texts are embedded
// through the configured encoder before they reach the store.
type Service struct {
	store docstore.Gateway
	enc   embedding.Encoder
	log   *logger.Logger
}

// NewService wires the document service. A nil logger falls back to a
// default one.
func NewService(store docstore.Gateway, enc embedding.Encoder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewLogger(logger.Config{ServiceName: "docstore"})
	}
	return &Service{store: store, enc: enc, log: log}
}

// InsertDocuments embeds the texts and inserts them in one batch,
// returning the store-assigned ids in input order.
func (s *Service) InsertDocuments(ctx context.Context, texts []string) ([]int64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("documents: no texts to insert: %w", docstore.ErrValidation)
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("documents: text %d is empty: %w", i, docstore.ErrValidation)
		}
	}

	vectors, err := s.enc.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("documents: embed %d texts: %w", len(texts), err)
	}

	ids, err := s.store.InsertDocuments(ctx, texts, vectors)
	if err != nil {
		return nil, err
	}

	s.log.Info("ingested documents", nil, map[string]interface{}{"count": len(ids)})
	return ids, nil
}

// GetDocument is a point lookup by id; absence returns (nil, nil).
func (s *Service) GetDocument(ctx context.Context, id int64) (*docstore.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// QueryByIDs is a batch lookup; missing ids are silently omitted.
func (s *Service) QueryByIDs(ctx context.Context, ids []int64) ([]docstore.Document, error) {
	return s.store.QueryByIDs(ctx, ids)
}

// UpdateDocument embeds the new text and replaces the stored document.
// The store assigns a fresh id; the result carries both ids.
func (s *Service) UpdateDocument(ctx context.Context, id int64, text string) (*docstore.UpdateResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("documents: replacement text is empty: %w", docstore.ErrValidation)
	}

	vectors, err := s.enc.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("documents: embed replacement text: %w", err)
	}

	res, err := s.store.UpdateDocument(ctx, id, text, vectors[0])
	if err != nil {
		return nil, err
	}

	s.log.Info("replaced document", nil, map[string]interface{}{
		"previous_id": res.PreviousID,
		"new_id":      res.NewID,
	})
	return res, nil
}

// DeleteDocument removes one document, returning the matched row count.
func (s *Service) DeleteDocument(ctx context.Context, id int64) (int64, error) {
	return s.store.DeleteDocument(ctx, id)
}

// DeleteDocuments removes a batch of documents, returning the matched
// row count.
func (s *Service) DeleteDocuments(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.store.DeleteDocuments(ctx, ids)
}
