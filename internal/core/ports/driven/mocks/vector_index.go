package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// MockVectorIndex is a mock implementation of VectorIndex for testing
type MockVectorIndex struct {
	mu      sync.RWMutex
	Vectors []domain.PassageVector

	// Matches, when set, is returned from Query as-is
	Matches []domain.PassageMatch

	FailUpsert error
	FailQuery  error

	UpsertCalls int
	QueryCalls  int
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, vectors []domain.PassageVector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.FailUpsert != nil {
		return m.FailUpsert
	}
	m.Vectors = append(m.Vectors, vectors...)
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, vector []float32, topK int) ([]domain.PassageMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCalls++
	if m.FailQuery != nil {
		return nil, m.FailQuery
	}
	if m.Matches != nil {
		if topK < len(m.Matches) {
			return m.Matches[:topK], nil
		}
		return m.Matches, nil
	}
	var matches []domain.PassageMatch
	for _, v := range m.Vectors {
		matches = append(matches, domain.PassageMatch{
			ID:       v.ID,
			Score:    1.0,
			Metadata: v.Metadata,
		})
		if len(matches) >= topK {
			break
		}
	}
	return matches, nil
}

func (m *MockVectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Vectors[:0]
	for _, v := range m.Vectors {
		if !strings.HasPrefix(v.ID, documentID+"_") {
			kept = append(kept, v)
		}
	}
	m.Vectors = kept
	return nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}
