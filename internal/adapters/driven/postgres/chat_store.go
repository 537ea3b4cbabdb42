package postgres

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore implements driven.ChatStore using PostgreSQL
type ChatStore struct {
	db *DB
}

// NewChatStore creates a new ChatStore
func NewChatStore(db *DB) *ChatStore {
	return &ChatStore{db: db}
}

// Save appends an exchange to the user's history
func (s *ChatStore) Save(ctx context.Context, exchange *domain.ChatExchange) error {
	query := `
		INSERT INTO chat_history (id, user_id, document_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		exchange.ID,
		exchange.UserID,
		exchange.DocumentID,
		exchange.Question,
		exchange.Answer,
		exchange.CreatedAt,
	)
	return err
}

// ListByUser returns the user's exchanges, newest first
func (s *ChatStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error) {
	query := `
		SELECT id, user_id, document_id, question, answer, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []*domain.ChatExchange
	for rows.Next() {
		var ex domain.ChatExchange
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.DocumentID, &ex.Question, &ex.Answer, &ex.CreatedAt); err != nil {
			return nil, err
		}
		exchanges = append(exchanges, &ex)
	}
	return exchanges, rows.Err()
}
