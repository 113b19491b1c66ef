package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
// The same provider (and model) must be used for documents and queries so
// both live in one embedding space.
type EmbeddingProvider interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
