package embedding

import "context"

// Encoder is the embedding provider contract.
type Encoder interface {
	// Encode converts texts to vectors. The result has one vector per
	// input text, in input order, each of length Dimension().
	Encode(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the constant vector length of this provider.
	Dimension() int
}
