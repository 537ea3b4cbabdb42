package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// UserStore handles user persistence and quota counters (PostgreSQL)
type UserStore interface {
	// Create inserts a new user
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// AdjustStorage atomically adds delta bytes (may be negative) to the
	// user's storage counter. Concurrent uploads/deletes by the same
	// user must not lose updates.
	AdjustStorage(ctx context.Context, userID string, delta int64) error

	// IncrementAIQueries atomically bumps the billable AI call counter
	IncrementAIQueries(ctx context.Context, userID string) error
}
