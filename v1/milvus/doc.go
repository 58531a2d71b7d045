// Package milvus implements the docstore.Gateway contract on top of the
// official Milvus Go SDK.
//
// The package owns a single session to a Milvus deployment and a logical
// collection of documents with a fixed schema: an auto-assigned INT64
// primary key, a bounded VARCHAR text field, and a FLOAT_VECTOR embedding
// field with one similarity index built at collection creation.
//
// # Core behaviors
//
//   - Idempotent connect/disconnect: repeated Connect calls on an open
//     session are no-ops, as is Disconnect on a closed one.
//   - Idempotent collection creation: CreateCollection returns an existing
//     collection untouched (its dimension is trusted as-is) and otherwise
//     creates schema plus index in one go.
//   - Durability discipline: every mutation (insert, delete, update,
//     clear) is followed by a flush before the method returns, so a
//     successful call is visible to any subsequent lookup or search.
//   - Load-before-search: the serving-tier load is tracked per collection
//     as a one-way flag, so repeated searches don't re-issue load calls.
//   - Update is delete+reinsert: the auto-id schema makes in-place updates
//     impossible, so UpdateDocument returns the replacement id explicitly.
//
// # Configuration
//
// Config follows three-tier precedence: explicit overrides beat MILVUS_*
// environment variables, which beat defaults.
//
//	cfg := milvus.ConfigFromEnv().WithCollection("articles")
//	store, err := milvus.NewClient(milvus.Params{Config: cfg, Logger: log})
//	if err != nil {
//	    return err
//	}
//	if err := store.Connect(ctx); err != nil {
//	    return err
//	}
//	defer store.Disconnect(context.Background())
//
// # Errors
//
// All failures are classified into the docstore taxonomy (ErrConnection,
// ErrNotFound, ErrValidation, ErrSchema) and wrapped with %w, so callers
// match them with errors.Is without importing the Milvus SDK.
//
// # Observability
//
// Every remote operation is logged through v1/logger, reported to an
// optional metrics.StoreObserver, and traced as a span named
// "milvus.<op>".
//
// A Client instance is not safe for concurrent use; the design is one
// in-flight remote operation per gateway. Use independent clients for
// concurrent work.
package milvus
