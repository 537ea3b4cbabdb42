package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// EmbeddingStore persists coarse whole-document embeddings (PostgreSQL).
// These back the local-mode semantic search; per-chunk vectors live in
// the remote vector index.
type EmbeddingStore interface {
	// Save stores a document's embedding
	Save(ctx context.Context, emb *domain.DocumentEmbedding) error

	// List retrieves all embeddings, optionally filtered by document type.
	// Pass an empty type for no filter.
	List(ctx context.Context, docType domain.DocumentType) ([]*domain.DocumentEmbedding, error)

	// DeleteByDocument removes all embeddings for a document
	DeleteByDocument(ctx context.Context, documentID string) error
}
