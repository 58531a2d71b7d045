// Package docstore defines the store-agnostic contract for the document
// access layer: the Gateway interface, the domain types that cross it, the
// error taxonomy, and the distance-to-score transform.
//
// The package is intentionally dependency-free. Application services
// (v1/documents, v1/search) depend only on this contract, so the concrete
// store implementation (v1/milvus) can be swapped for a test double or a
// different backend without touching application code.
//
// # Gateway
//
// [Gateway] models a single owned session to a remote vector store. The
// design is sequential and synchronous: one in-flight remote operation per
// gateway instance, no pooling. Callers needing concurrency must use
// independent gateway instances or serialize access externally.
//
//	func NewDocumentService(store docstore.Gateway) *Service {
//	    return &Service{store: store}
//	}
//
// # Identity and updates
//
// Document ids are assigned by the store, never by the caller. Because the
// store's write model is append-only with auto-assigned primary keys, an
// update is a delete followed by a reinsert and therefore produces a new
// id. [UpdateResult] makes that explicit so callers cannot mistake id
// stability for a guarantee.
//
// # Errors
//
// Failures are classified into four sentinel errors, matched with
// [errors.Is] or the IsXxx helpers:
//
//   - [ErrConnection]: session establishment or network failure
//   - [ErrNotFound]: collection or document absence where absence is invalid
//   - [ErrValidation]: shape, dimension, or count mismatches
//   - [ErrSchema]: invalid collection creation parameters
//
// Point lookups and deletes on non-existent ids are not errors; absence and
// zero-match are normal, reportable outcomes.
//
// # Scores
//
// Search results carry both the raw metric value reported by the store and
// a normalized higher-is-better score. See [MetricType.Score] for the
// transform and its metric-direction guard.
package docstore
