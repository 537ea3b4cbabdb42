package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Create inserts a new document record
	Create(ctx context.Context, doc *domain.Document) error

	// Update persists the document's processed fields
	Update(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetOwned retrieves a document by ID scoped to its owner.
	// Returns domain.ErrNotFound when the document exists but belongs
	// to a different user.
	GetOwned(ctx context.Context, userID, id string) (*domain.Document, error)

	// ListByUser retrieves all documents for a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Document, error)

	// ListUnprocessed retrieves documents still pending classification
	// that were created before the cutoff (for the reprocess reaper)
	ListUnprocessed(ctx context.Context, olderThanSeconds int) ([]*domain.Document, error)

	// Delete deletes a document and its clauses
	Delete(ctx context.Context, id string) error

	// CountByUser returns the document count for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}
