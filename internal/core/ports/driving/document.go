package driving

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// DocumentService provides read access to documents, scoped to the owner
type DocumentService interface {
	// Get retrieves a document owned by the user
	Get(ctx context.Context, userID, id string) (*domain.Document, error)

	// List retrieves all of a user's documents, newest first
	List(ctx context.Context, userID string) ([]*domain.Document, error)
}
