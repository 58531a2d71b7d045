package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuseek/docstore/v1/docstore"
)

type fakeEncoder struct {
	vector []float32
	err    error
	texts  []string
}

func (f *fakeEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	f.texts = append(f.texts, texts...)
	if f.err != nil {
		return nil, f.err
	}
	return [][]float32{f.vector}, nil
}

func (f *fakeEncoder) Dimension() int { return len(f.vector) }

// searchOnlyGateway stubs the store; only Search matters here.
type searchOnlyGateway struct {
	docstore.Gateway

	gotVector []float32
	gotTopK   int
	results   []docstore.SearchResult
	err       error
}

func (f *searchOnlyGateway) Search(_ context.Context, embedding []float32, topK int) ([]docstore.SearchResult, error) {
	f.gotVector = embedding
	f.gotTopK = topK
	return f.results, f.err
}

func TestSearchDocuments_EmbedsQueryAndDelegates(t *testing.T) {
	enc := &fakeEncoder{vector: []float32{0.1, 0.2, 0.3}}
	store := &searchOnlyGateway{
		results: []docstore.SearchResult{
			{ID: 1, Text: "best", Distance: 0, Score: 1},
			{ID: 2, Text: "second", Distance: 1, Score: 0.5},
		},
	}
	svc := NewService(store, enc, nil)

	results, err := svc.SearchDocuments(context.Background(), "how do vector indexes work", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []string{"how do vector indexes work"}, enc.texts)
	assert.Equal(t, enc.vector, store.gotVector)
	assert.Equal(t, 2, store.gotTopK)
	assert.Equal(t, int64(1), results[0].ID)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchDocuments_RejectsEmptyQuery(t *testing.T) {
	svc := NewService(&searchOnlyGateway{}, &fakeEncoder{vector: []float32{1}}, nil)

	_, err := svc.SearchDocuments(context.Background(), "   ", 5)
	assert.True(t, docstore.IsValidationError(err))
}

func TestSearchDocuments_EncoderFailureDoesNotReachStore(t *testing.T) {
	encErr := errors.New("inference down")
	store := &searchOnlyGateway{}
	svc := NewService(store, &fakeEncoder{err: encErr}, nil)

	_, err := svc.SearchDocuments(context.Background(), "query", 5)
	require.ErrorIs(t, err, encErr)
	assert.Nil(t, store.gotVector)
}

func TestSearchDocuments_StoreErrorPropagatesUnchanged(t *testing.T) {
	store := &searchOnlyGateway{err: docstore.ErrConnection}
	svc := NewService(store, &fakeEncoder{vector: []float32{1}}, nil)

	_, err := svc.SearchDocuments(context.Background(), "query", 5)
	assert.True(t, docstore.IsConnectionError(err))
}

func TestSearchDocuments_ZeroTopKPassesThrough(t *testing.T) {
	store := &searchOnlyGateway{}
	svc := NewService(store, &fakeEncoder{vector: []float32{1}}, nil)

	_, err := svc.SearchDocuments(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, store.gotTopK)
}
