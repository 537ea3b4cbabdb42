package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// ChatStore persists question/answer exchanges (PostgreSQL).
// Exchanges are append-only; there is no update or delete.
type ChatStore interface {
	// Save appends an exchange
	Save(ctx context.Context, exchange *domain.ChatExchange) error

	// ListByUser retrieves a user's exchanges, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error)
}
