package docstore

import "context"

// Gateway is the contract between application services and the remote
// vector store. It owns the session handle and the collection references;
// services never touch the underlying SDK directly.
//
// All operations that reach the network take a context and may block for
// the duration of the round trip. Every mutation (insert, delete, update,
// clear) flushes before returning, so a caller observing success is
// guaranteed the mutation is visible to a subsequent search or lookup.
//
// A gateway instance is not safe for concurrent use.
type Gateway interface {
	// Connect establishes the session if not already established.
	// Calling it on an open session is a no-op returning nil.
	// Wraps ErrConnection when the endpoint is unreachable or rejects
	// authentication.
	Connect(ctx context.Context) error

	// Disconnect tears down the session. Idempotent; safe to call even if
	// Connect was never called.
	Disconnect(ctx context.Context) error

	// CreateCollection creates the collection with the given embedding
	// dimension and builds the configured similarity index, or returns the
	// existing collection as-is without re-validating its dimension.
	// An empty name selects the configured default collection.
	// Wraps ErrSchema when dimension <= 0.
	CreateCollection(ctx context.Context, dimension int, name string) (*CollectionInfo, error)

	// GetCollection resolves an existing collection.
	// Wraps ErrNotFound when it does not exist.
	GetCollection(ctx context.Context, name string) (*CollectionInfo, error)

	// ListCollections returns the names of all collections in the store.
	ListCollections(ctx context.Context) ([]string, error)

	// DropCollection removes a collection and all its data. Dropping an
	// absent collection is a no-op success.
	DropCollection(ctx context.Context, name string) error

	// ClearCollection deletes all rows while preserving the schema and
	// index, returning the number of rows removed.
	ClearCollection(ctx context.Context, name string) (int64, error)

	// CollectionStats returns the row count of a collection.
	CollectionStats(ctx context.Context, name string) (*CollectionStats, error)

	// InsertDocuments inserts texts with their embeddings in one batch,
	// flushes, and returns the store-assigned ids in input order.
	// Wraps ErrValidation when len(texts) != len(embeddings) or any
	// embedding's length differs from the collection dimension.
	InsertDocuments(ctx context.Context, texts []string, embeddings [][]float32) ([]int64, error)

	// GetDocument is a point lookup by primary key. Absence is not an
	// error: it returns (nil, nil).
	GetDocument(ctx context.Context, id int64) (*Document, error)

	// QueryByIDs is a batch point lookup. Missing ids are silently
	// omitted; partial misses are not errors.
	QueryByIDs(ctx context.Context, ids []int64) ([]Document, error)

	// DeleteDocument deletes one document by id, flushes, and returns the
	// number of matched rows (0 when absent — not an error).
	DeleteDocument(ctx context.Context, id int64) (int64, error)

	// DeleteDocuments deletes a batch of documents by id, flushes, and
	// returns the number of matched rows.
	DeleteDocuments(ctx context.Context, ids []int64) (int64, error)

	// UpdateDocument replaces an existing document: it verifies the id
	// exists (wrapping ErrNotFound otherwise), deletes it, reinserts the
	// new text and embedding as a fresh row, flushes, and reports the new
	// id. The id always changes; see UpdateResult.
	UpdateDocument(ctx context.Context, id int64, text string, embedding []float32) (*UpdateResult, error)

	// Search ensures the collection is loaded into the serving tier, runs
	// a similarity query for the topK nearest neighbors, and returns
	// results ordered best-first with scores computed from the configured
	// metric. Wraps ErrValidation when topK <= 0 or the query embedding's
	// dimension differs from the collection's.
	Search(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error)
}
