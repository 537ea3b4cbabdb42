package driving

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// ChatService answers questions grounded in the indexed corpus.
type ChatService interface {
	// Ask retrieves relevant passages, builds a grounded prompt and
	// returns the model's answer
	Ask(ctx context.Context, userID, question string) (string, error)

	// History returns the user's past exchanges, newest first
	History(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error)
}
