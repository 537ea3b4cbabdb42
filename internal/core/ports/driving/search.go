package driving

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// SearchService handles corpus-wide semantic search over coarse
// document embeddings.
type SearchService interface {
	// Search ranks all stored documents against the query and returns
	// the top results. docType narrows the candidate set; pass empty
	// for no filter.
	Search(ctx context.Context, query string, docType domain.DocumentType) ([]*domain.RankedDocument, error)
}
