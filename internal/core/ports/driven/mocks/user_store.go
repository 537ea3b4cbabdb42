package mocks

import (
	"context"
	"sync"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// StorageAdjustments records every delta passed to AdjustStorage
	StorageAdjustments []int64

	// AIQueryIncrements counts IncrementAIQueries calls
	AIQueryIncrements int
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrInvalidInput
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) AdjustStorage(ctx context.Context, userID string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.StorageUsed += delta
	m.StorageAdjustments = append(m.StorageAdjustments, delta)
	return nil
}

func (m *MockUserStore) IncrementAIQueries(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.AIQueriesUsed++
	m.AIQueryIncrements++
	return nil
}
