package driven

import "context"

// EmbeddingService generates text embeddings
type EmbeddingService interface {
	// Embed generates a fixed-length vector for one text.
	// Input longer than the model maximum is the service's concern;
	// callers pass text through unmodified.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimension size
	Dimensions() int

	// HealthCheck verifies the embedding service is available
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the embedding service
	Close() error
}
