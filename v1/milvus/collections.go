package milvus

import (
	"context"
	"fmt"
	"strconv"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/docuseek/docstore/v1/docstore"
)

// CreateCollection creates the collection and its similarity index, or
// returns a handle to an existing collection of the same name. Existing
// collections are trusted as-is: their dimension is not re-validated
// against the requested one.
//
// The existence check and the create are two remote calls, so a
// concurrent creator can win the race in between; the second create then
// fails and surfaces to the caller rather than being masked.
func (c *Client) CreateCollection(ctx context.Context, dimension int, name string) (info *docstore.CollectionInfo, err error) {
	ctx, done := c.instrument(ctx, "create_collection")
	defer func() { done(err) }()

	name = c.collectionName(name)
	if dimension <= 0 {
		return nil, fmt.Errorf("milvus: dimension must be positive, got %d: %w", dimension, docstore.ErrSchema)
	}

	api, err := c.session()
	if err != nil {
		return nil, err
	}

	exists, err := api.HasCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("milvus: check collection %q: %w", name, err)
	}
	if exists {
		c.log.Info("collection already exists", nil, map[string]interface{}{"collection": name})
		return c.resolveCollection(ctx, name)
	}

	schema := entity.NewSchema().
		WithName(name).
		WithDescription("document similarity search collection").
		WithAutoID(true).
		WithField(entity.NewField().
			WithName(idField).
			WithDataType(entity.FieldTypeInt64).
			WithIsPrimaryKey(true).
			WithIsAutoID(true)).
		WithField(entity.NewField().
			WithName(textField).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(c.cfg.MaxTextLength))).
		WithField(entity.NewField().
			WithName(vectorField).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(dimension)))

	// Strong consistency so the flush-then-read discipline holds for
	// point lookups as well as searches.
	err = api.CreateCollection(ctx, schema, 1, milvusclient.WithConsistencyLevel(entity.ClStrong))
	if err != nil {
		return nil, fmt.Errorf("milvus: create collection %q: %w", name, err)
	}

	index, err := c.buildIndex()
	if err != nil {
		return nil, err
	}
	if err = api.CreateIndex(ctx, name, vectorField, index, false); err != nil {
		return nil, fmt.Errorf("milvus: create index on %q: %w", name, err)
	}

	info = &docstore.CollectionInfo{
		Name:      name,
		Dimension: dimension,
		Metric:    c.cfg.Metric,
	}
	c.collections[name] = info
	c.log.Info("created collection", nil, map[string]interface{}{
		"collection": name,
		"dimension":  dimension,
		"index":      c.cfg.IndexType,
		"metric":     string(c.cfg.Metric),
	})
	return info, nil
}

// GetCollection resolves an existing collection, wrapping ErrNotFound
// when it does not exist.
func (c *Client) GetCollection(ctx context.Context, name string) (info *docstore.CollectionInfo, err error) {
	ctx, done := c.instrument(ctx, "get_collection")
	defer func() { done(err) }()

	return c.resolveCollection(ctx, c.collectionName(name))
}

// ListCollections returns the names of all collections in the store.
func (c *Client) ListCollections(ctx context.Context) (names []string, err error) {
	ctx, done := c.instrument(ctx, "list_collections")
	defer func() { done(err) }()

	api, err := c.session()
	if err != nil {
		return nil, err
	}

	collections, err := api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("milvus: list collections: %w", err)
	}

	names = make([]string, 0, len(collections))
	for _, coll := range collections {
		names = append(names, coll.Name)
	}
	return names, nil
}

// DropCollection removes a collection and all its data. Dropping an
// absent collection is a no-op success.
func (c *Client) DropCollection(ctx context.Context, name string) (err error) {
	ctx, done := c.instrument(ctx, "drop_collection")
	defer func() { done(err) }()

	name = c.collectionName(name)
	api, err := c.session()
	if err != nil {
		return err
	}

	exists, err := api.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("milvus: check collection %q: %w", name, err)
	}
	if !exists {
		c.log.Debug("drop of absent collection is a no-op", nil, map[string]interface{}{"collection": name})
		return nil
	}

	if err = api.DropCollection(ctx, name); err != nil {
		return fmt.Errorf("milvus: drop collection %q: %w", name, err)
	}
	delete(c.collections, name)
	delete(c.loaded, name)
	c.log.Info("dropped collection", nil, map[string]interface{}{"collection": name})
	return nil
}

// ClearCollection deletes every row while preserving the schema and
// index, returning the number of rows removed.
func (c *Client) ClearCollection(ctx context.Context, name string) (removed int64, err error) {
	ctx, done := c.instrument(ctx, "clear_collection")
	defer func() { done(err) }()

	name = c.collectionName(name)
	if _, err = c.resolveCollection(ctx, name); err != nil {
		return 0, err
	}
	api, err := c.session()
	if err != nil {
		return 0, err
	}
	if err = c.ensureLoaded(ctx, name); err != nil {
		return 0, err
	}

	docs, err := c.queryDocuments(ctx, name, fmt.Sprintf("%s >= 0", idField), false)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	ids := make([]int64, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	if err = api.Delete(ctx, name, "", idsExpr(ids)); err != nil {
		return 0, fmt.Errorf("milvus: clear collection %q: %w", name, err)
	}
	if err = c.flush(ctx, name); err != nil {
		return 0, err
	}

	c.log.Info("cleared collection", nil, map[string]interface{}{
		"collection": name,
		"removed":    len(ids),
	})
	return int64(len(ids)), nil
}

// CollectionStats returns the persisted row count of a collection.
func (c *Client) CollectionStats(ctx context.Context, name string) (stats *docstore.CollectionStats, err error) {
	ctx, done := c.instrument(ctx, "collection_stats")
	defer func() { done(err) }()

	name = c.collectionName(name)
	if _, err = c.resolveCollection(ctx, name); err != nil {
		return nil, err
	}
	api, err := c.session()
	if err != nil {
		return nil, err
	}

	raw, err := api.GetCollectionStatistics(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("milvus: stats for %q: %w", name, err)
	}

	var count int64
	if v, ok := raw["row_count"]; ok {
		if count, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("milvus: parse row_count %q: %w", v, err)
		}
	}
	return &docstore.CollectionStats{Name: name, RowCount: count}, nil
}

// collectionName maps the empty name to the configured default.
func (c *Client) collectionName(name string) string {
	if name == "" {
		return c.cfg.CollectionName
	}
	return name
}

// resolveCollection returns the cached handle or describes the collection
// remotely, guaranteeing existence before any dependent operation runs.
func (c *Client) resolveCollection(ctx context.Context, name string) (*docstore.CollectionInfo, error) {
	if info, ok := c.collections[name]; ok {
		return info, nil
	}

	api, err := c.session()
	if err != nil {
		return nil, err
	}

	exists, err := api.HasCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("milvus: check collection %q: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("milvus: collection %q does not exist: %w", name, docstore.ErrNotFound)
	}

	coll, err := api.DescribeCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("milvus: describe collection %q: %w", name, err)
	}

	info := &docstore.CollectionInfo{
		Name:      name,
		Dimension: schemaDimension(coll.Schema),
		Metric:    c.cfg.Metric,
		Loaded:    coll.Loaded,
	}
	c.collections[name] = info
	if coll.Loaded {
		c.loaded[name] = true
	}
	return info, nil
}

// ensureLoaded brings the collection into the serving tier once; after
// the first successful load the call is skipped entirely.
func (c *Client) ensureLoaded(ctx context.Context, name string) error {
	if c.loaded[name] {
		return nil
	}

	api, err := c.session()
	if err != nil {
		return err
	}
	if err := api.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("milvus: load collection %q: %w", name, err)
	}
	c.loaded[name] = true
	c.log.Debug("loaded collection into serving tier", nil, map[string]interface{}{"collection": name})
	return nil
}

// flush forces pending writes to durability so they are visible to
// subsequent reads and searches.
func (c *Client) flush(ctx context.Context, name string) error {
	api, err := c.session()
	if err != nil {
		return err
	}
	if err := api.Flush(ctx, name, false); err != nil {
		return fmt.Errorf("milvus: flush %q: %w", name, err)
	}
	return nil
}

// schemaDimension extracts the embedding dimension from a described
// schema; 0 when the schema has no vector field.
func schemaDimension(schema *entity.Schema) int {
	if schema == nil {
		return 0
	}
	for _, field := range schema.Fields {
		if field.Name != vectorField {
			continue
		}
		if v, ok := field.TypeParams[entity.TypeParamDim]; ok {
			if dim, err := strconv.Atoi(v); err == nil {
				return dim
			}
		}
	}
	return 0
}
