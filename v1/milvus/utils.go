package milvus

import (
	"fmt"
	"strconv"
	"strings"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/docuseek/docstore/v1/docstore"
)

// idExpr builds the boolean expression matching a single primary key.
func idExpr(id int64) string {
	return fmt.Sprintf("%s == %d", idField, id)
}

// idsExpr builds the boolean expression matching a set of primary keys.
func idsExpr(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s in [%s]", idField, strings.Join(parts, ", "))
}

// parseDocuments decodes a scalar query result set into documents. The
// vector column is optional; documents from id-and-text queries carry a
// nil embedding.
func parseDocuments(rs milvusclient.ResultSet) ([]docstore.Document, error) {
	idCol, ok := rs.GetColumn(idField).(*entity.ColumnInt64)
	if !ok {
		return nil, fmt.Errorf("milvus: result set has no %q column", idField)
	}
	textCol, ok := rs.GetColumn(textField).(*entity.ColumnVarChar)
	if !ok {
		return nil, fmt.Errorf("milvus: result set has no %q column", textField)
	}

	ids := idCol.Data()
	texts := textCol.Data()
	if len(ids) != len(texts) {
		return nil, fmt.Errorf("milvus: ragged result set: %d ids, %d texts", len(ids), len(texts))
	}

	var vectors [][]float32
	if vecCol, ok := rs.GetColumn(vectorField).(*entity.ColumnFloatVector); ok {
		vectors = vecCol.Data()
		if len(vectors) != len(ids) {
			return nil, fmt.Errorf("milvus: ragged result set: %d ids, %d vectors", len(ids), len(vectors))
		}
	}

	docs := make([]docstore.Document, len(ids))
	for i := range ids {
		docs[i] = docstore.Document{ID: ids[i], Text: texts[i]}
		if vectors != nil {
			docs[i].Embedding = vectors[i]
		}
	}
	return docs, nil
}

// parseSearchHits decodes one search result into ranked hits, applying
// the metric's score transform to each raw distance.
func parseSearchHits(hit milvusclient.SearchResult, metric docstore.MetricType) ([]docstore.SearchResult, error) {
	if hit.Err != nil {
		return nil, fmt.Errorf("milvus: partial search failure: %w", hit.Err)
	}

	idCol, ok := hit.IDs.(*entity.ColumnInt64)
	if !ok {
		return nil, fmt.Errorf("milvus: search hit has unexpected id column type %T", hit.IDs)
	}
	textCol, ok := hit.Fields.GetColumn(textField).(*entity.ColumnVarChar)
	if !ok {
		return nil, fmt.Errorf("milvus: search hit has no %q column", textField)
	}

	ids := idCol.Data()
	texts := textCol.Data()
	if len(ids) != len(texts) || len(ids) != len(hit.Scores) {
		return nil, fmt.Errorf("milvus: ragged search hit: %d ids, %d texts, %d scores",
			len(ids), len(texts), len(hit.Scores))
	}

	results := make([]docstore.SearchResult, len(ids))
	for i := range ids {
		results[i] = docstore.SearchResult{
			ID:       ids[i],
			Text:     texts[i],
			Distance: hit.Scores[i],
			Score:    metric.Score(hit.Scores[i]),
		}
	}
	return results, nil
}

// buildIndex translates the configured index type into an SDK index
// definition.
func (c *Client) buildIndex() (entity.Index, error) {
	metric := c.metricType()
	switch c.cfg.IndexType {
	case IndexIvfFlat:
		return entity.NewIndexIvfFlat(metric, c.cfg.IndexNlist)
	case IndexHNSW:
		return entity.NewIndexHNSW(metric, c.cfg.HNSWM, c.cfg.HNSWEfConstruction)
	case IndexFlat:
		return entity.NewIndexFlat(metric)
	case IndexAutoIndex:
		return entity.NewIndexAUTOINDEX(metric)
	default:
		return nil, fmt.Errorf("milvus: unsupported index type %q", c.cfg.IndexType)
	}
}

// searchParam builds the search-time parameters matching the configured
// index type.
func (c *Client) searchParam() (entity.SearchParam, error) {
	switch c.cfg.IndexType {
	case IndexIvfFlat:
		return entity.NewIndexIvfFlatSearchParam(c.cfg.SearchNprobe)
	case IndexHNSW:
		return entity.NewIndexHNSWSearchParam(c.cfg.SearchEf)
	case IndexFlat:
		return entity.NewIndexFlatSearchParam()
	case IndexAutoIndex:
		return entity.NewIndexAUTOINDEXSearchParam(1)
	default:
		return nil, fmt.Errorf("milvus: unsupported index type %q", c.cfg.IndexType)
	}
}

func (c *Client) metricType() entity.MetricType {
	return entity.MetricType(c.cfg.Metric)
}
