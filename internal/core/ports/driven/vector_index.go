package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// VectorIndex is the remote similarity index holding per-chunk
// passage vectors (Pinecone).
type VectorIndex interface {
	// Upsert writes passage vectors in one batch call.
	// An empty batch is a no-op, not an error.
	Upsert(ctx context.Context, vectors []domain.PassageVector) error

	// Query returns the topK nearest neighbours with metadata,
	// ordered by descending relevance as the index provides it.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.PassageMatch, error)

	// DeleteByDocument removes every passage vector tied to a document
	DeleteByDocument(ctx context.Context, documentID string) error

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error
}
