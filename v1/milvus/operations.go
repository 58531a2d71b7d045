package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/docuseek/docstore/v1/docstore"
)

// InsertDocuments writes texts with their embeddings in one batch,
// flushes, and returns the store-assigned ids in input order.
func (c *Client) InsertDocuments(ctx context.Context, texts []string, embeddings [][]float32) (ids []int64, err error) {
	ctx, done := c.instrument(ctx, "insert")
	defer func() { done(err) }()

	if len(texts) != len(embeddings) {
		return nil, fmt.Errorf("milvus: %d texts but %d embeddings: %w",
			len(texts), len(embeddings), docstore.ErrValidation)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("milvus: empty batch: %w", docstore.ErrValidation)
	}

	name := c.cfg.CollectionName
	info, err := c.resolveCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	for i, emb := range embeddings {
		if len(emb) != info.Dimension {
			return nil, fmt.Errorf("milvus: embedding %d has dimension %d, collection expects %d: %w",
				i, len(emb), info.Dimension, docstore.ErrValidation)
		}
	}
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	textCol := entity.NewColumnVarChar(textField, texts)
	vectorCol := entity.NewColumnFloatVector(vectorField, info.Dimension, embeddings)

	pks, err := api.Insert(ctx, name, "", textCol, vectorCol)
	if err != nil {
		return nil, fmt.Errorf("milvus: insert %d documents into %q: %w", len(texts), name, err)
	}
	if err = c.flush(ctx, name); err != nil {
		return nil, err
	}

	idCol, ok := pks.(*entity.ColumnInt64)
	if !ok {
		return nil, fmt.Errorf("milvus: unexpected primary key column type %T", pks)
	}
	ids = idCol.Data()

	if c.observer != nil {
		c.observer.AddDocumentsWritten(len(ids))
	}
	c.log.Info("inserted documents", nil, map[string]interface{}{
		"collection": name,
		"count":      len(ids),
	})
	return ids, nil
}

// GetDocument is a point lookup by primary key. Absence is not an
// error: it returns (nil, nil).
func (c *Client) GetDocument(ctx context.Context, id int64) (doc *docstore.Document, err error) {
	ctx, done := c.instrument(ctx, "get")
	defer func() { done(err) }()

	docs, err := c.lookup(ctx, idExpr(id))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// QueryByIDs is a batch point lookup. Missing ids are silently omitted.
func (c *Client) QueryByIDs(ctx context.Context, ids []int64) (docs []docstore.Document, err error) {
	ctx, done := c.instrument(ctx, "query")
	defer func() { done(err) }()

	if len(ids) == 0 {
		return nil, nil
	}
	return c.lookup(ctx, idsExpr(ids))
}

// DeleteDocument deletes one document by id, flushes, and returns the
// number of matched rows. Deleting an absent id is a no-op returning 0.
func (c *Client) DeleteDocument(ctx context.Context, id int64) (matched int64, err error) {
	ctx, done := c.instrument(ctx, "delete")
	defer func() { done(err) }()

	return c.deleteByExpr(ctx, idExpr(id))
}

// DeleteDocuments deletes a batch of documents by id, flushes, and
// returns the number of matched rows.
func (c *Client) DeleteDocuments(ctx context.Context, ids []int64) (matched int64, err error) {
	ctx, done := c.instrument(ctx, "delete_batch")
	defer func() { done(err) }()

	if len(ids) == 0 {
		return 0, nil
	}
	return c.deleteByExpr(ctx, idsExpr(ids))
}

// UpdateDocument replaces an existing document. The auto-id schema makes
// in-place updates impossible, so the row is deleted and the new content
// reinserted as a fresh row; the returned result carries the new id.
func (c *Client) UpdateDocument(ctx context.Context, id int64, text string, embedding []float32) (res *docstore.UpdateResult, err error) {
	ctx, done := c.instrument(ctx, "update")
	defer func() { done(err) }()

	name := c.cfg.CollectionName
	info, err := c.resolveCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(embedding) != info.Dimension {
		return nil, fmt.Errorf("milvus: embedding has dimension %d, collection expects %d: %w",
			len(embedding), info.Dimension, docstore.ErrValidation)
	}
	api, err := c.session()
	if err != nil {
		return nil, err
	}
	if err = c.ensureLoaded(ctx, name); err != nil {
		return nil, err
	}

	existing, err := c.queryDocuments(ctx, name, idExpr(id), false)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("milvus: document %d does not exist: %w", id, docstore.ErrNotFound)
	}

	if err = api.Delete(ctx, name, "", idExpr(id)); err != nil {
		return nil, fmt.Errorf("milvus: delete document %d: %w", id, err)
	}
	if err = c.flush(ctx, name); err != nil {
		return nil, err
	}

	ids, err := c.InsertDocuments(ctx, []string{text}, [][]float32{embedding})
	if err != nil {
		return nil, err
	}

	c.log.Info("updated document", nil, map[string]interface{}{
		"collection":  name,
		"previous_id": id,
		"new_id":      ids[0],
	})
	return &docstore.UpdateResult{PreviousID: id, NewID: ids[0], Replaced: true}, nil
}

// Search runs a similarity query for the topK nearest neighbors and
// returns results ordered best-first.
func (c *Client) Search(ctx context.Context, embedding []float32, topK int) (results []docstore.SearchResult, err error) {
	ctx, done := c.instrument(ctx, "search")
	defer func() { done(err) }()

	if topK <= 0 {
		return nil, fmt.Errorf("milvus: topK must be positive, got %d: %w", topK, docstore.ErrValidation)
	}

	name := c.cfg.CollectionName
	info, err := c.resolveCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(embedding) != info.Dimension {
		return nil, fmt.Errorf("milvus: query embedding has dimension %d, collection expects %d: %w",
			len(embedding), info.Dimension, docstore.ErrValidation)
	}
	api, err := c.session()
	if err != nil {
		return nil, err
	}
	if err = c.ensureLoaded(ctx, name); err != nil {
		return nil, err
	}

	sp, err := c.searchParam()
	if err != nil {
		return nil, err
	}

	hits, err := api.Search(ctx, name, nil, "", []string{textField},
		[]entity.Vector{entity.FloatVector(embedding)}, vectorField,
		c.metricType(), topK, sp)
	if err != nil {
		return nil, fmt.Errorf("milvus: search %q: %w", name, err)
	}

	for _, hit := range hits {
		rs, err := parseSearchHits(hit, c.cfg.Metric)
		if err != nil {
			return nil, err
		}
		results = append(results, rs...)
	}
	return results, nil
}

// lookup resolves the default collection, ensures it is loaded, and
// fetches documents matching the expression with their vectors.
func (c *Client) lookup(ctx context.Context, expr string) ([]docstore.Document, error) {
	name := c.cfg.CollectionName
	if _, err := c.resolveCollection(ctx, name); err != nil {
		return nil, err
	}
	if err := c.ensureLoaded(ctx, name); err != nil {
		return nil, err
	}
	return c.queryDocuments(ctx, name, expr, true)
}

// deleteByExpr counts the rows the expression matches, deletes them, and
// flushes. A zero match short-circuits to success without a delete call.
func (c *Client) deleteByExpr(ctx context.Context, expr string) (int64, error) {
	name := c.cfg.CollectionName
	if _, err := c.resolveCollection(ctx, name); err != nil {
		return 0, err
	}
	api, err := c.session()
	if err != nil {
		return 0, err
	}
	if err := c.ensureLoaded(ctx, name); err != nil {
		return 0, err
	}

	matched, err := c.queryDocuments(ctx, name, expr, false)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, nil
	}

	if err := api.Delete(ctx, name, "", expr); err != nil {
		return 0, fmt.Errorf("milvus: delete %q: %w", expr, err)
	}
	if err := c.flush(ctx, name); err != nil {
		return 0, err
	}

	c.log.Info("deleted documents", nil, map[string]interface{}{
		"collection": name,
		"matched":    len(matched),
	})
	return int64(len(matched)), nil
}

// queryDocuments runs a scalar query and decodes the result set.
func (c *Client) queryDocuments(ctx context.Context, name, expr string, withVectors bool) ([]docstore.Document, error) {
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	fields := []string{idField, textField}
	if withVectors {
		fields = append(fields, vectorField)
	}

	rs, err := api.Query(ctx, name, nil, expr, fields)
	if err != nil {
		return nil, fmt.Errorf("milvus: query %q on %q: %w", expr, name, err)
	}
	return parseDocuments(rs)
}
