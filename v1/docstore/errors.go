package docstore

import "errors"

// Error taxonomy for the access layer. Implementations wrap these with %w
// so callers can classify failures with errors.Is without depending on the
// backing SDK's error types.
var (
	// ErrConnection is returned when the session cannot be established or a
	// network-level failure surfaces from the remote store. The core layer
	// does not retry; the caller decides.
	ErrConnection = errors.New("docstore: connection failed")

	// ErrNotFound is returned when a collection or document is absent in a
	// context where absence is invalid (GetCollection on an unknown name,
	// UpdateDocument on an unknown id).
	ErrNotFound = errors.New("docstore: not found")

	// ErrValidation is returned on shape mismatches: texts/embeddings count
	// mismatch, embedding dimension differing from the collection's, or a
	// non-positive topK.
	ErrValidation = errors.New("docstore: validation failed")

	// ErrSchema is returned on invalid collection creation parameters,
	// such as a non-positive dimension.
	ErrSchema = errors.New("docstore: invalid schema")
)

// IsConnectionError reports whether err is a session/network failure.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsNotFoundError reports whether err is a semantically-invalid absence.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a shape/count/dimension mismatch.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSchemaError reports whether err is an invalid creation parameter.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}
