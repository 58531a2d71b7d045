package docstore

// Document is a stored (id, text, embedding) tuple.
// The id is assigned by the store on insertion; text and embedding are
// immutable in place — replacing them means delete plus reinsert.
type Document struct {
	// ID is the store-assigned 64-bit primary key.
	ID int64 `json:"id"`

	// Text is the original document text.
	Text string `json:"text"`

	// Embedding is the fixed-dimension vector for the text.
	Embedding []float32 `json:"embedding"`
}

// SearchResult is one ranked hit from a similarity search. It is derived,
// never persisted — produced fresh per query.
type SearchResult struct {
	// ID of the matched document.
	ID int64 `json:"id"`

	// Text of the matched document.
	Text string `json:"text"`

	// Distance is the raw metric value reported by the store.
	// For distance metrics (L2) lower is better; for similarity metrics
	// (IP, COSINE) higher is better.
	Distance float32 `json:"distance"`

	// Score is the normalized higher-is-better value derived from
	// Distance via MetricType.Score.
	Score float32 `json:"score"`
}

// UpdateResult reports the outcome of an update. Under the store's
// auto-id write model an update always replaces the row, so NewID differs
// from PreviousID and Replaced is true. The field exists so the id change
// is part of the signature, not a surprise.
type UpdateResult struct {
	// PreviousID is the id the caller asked to update. It no longer exists.
	PreviousID int64 `json:"previousId"`

	// NewID is the id assigned to the reinserted document.
	NewID int64 `json:"newId"`

	// Replaced is true when the update was performed as delete+reinsert.
	// In-place updates are not supported by this store, so it is always true.
	Replaced bool `json:"replaced"`
}

// CollectionInfo describes an existing collection.
type CollectionInfo struct {
	// Name of the collection.
	Name string `json:"name"`

	// Dimension of the embedding field, fixed at creation time.
	Dimension int `json:"dimension"`

	// Metric is the similarity metric the collection's index was built with.
	Metric MetricType `json:"metric"`

	// Loaded reports whether the collection is in the serving tier.
	Loaded bool `json:"loaded"`
}

// CollectionStats carries the row count of a collection.
type CollectionStats struct {
	// Name of the collection.
	Name string `json:"name"`

	// RowCount is the number of persisted documents.
	RowCount int64 `json:"rowCount"`
}
