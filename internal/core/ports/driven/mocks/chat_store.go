package mocks

import (
	"context"
	"sync"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// MockChatStore is a mock implementation of ChatStore for testing
type MockChatStore struct {
	mu        sync.RWMutex
	Exchanges []*domain.ChatExchange

	// FailSave injects an error on Save
	FailSave error
}

// NewMockChatStore creates a new MockChatStore
func NewMockChatStore() *MockChatStore {
	return &MockChatStore{}
}

func (m *MockChatStore) Save(ctx context.Context, exchange *domain.ChatExchange) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *exchange
	m.Exchanges = append(m.Exchanges, &cp)
	return nil
}

func (m *MockChatStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ChatExchange
	for i := len(m.Exchanges) - 1; i >= 0; i-- {
		if m.Exchanges[i].UserID != userID {
			continue
		}
		cp := *m.Exchanges[i]
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
