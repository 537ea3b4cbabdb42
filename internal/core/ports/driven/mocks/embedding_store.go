package mocks

import (
	"context"
	"sync"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// MockEmbeddingStore is a mock implementation of EmbeddingStore for testing
type MockEmbeddingStore struct {
	mu         sync.RWMutex
	embeddings []*domain.DocumentEmbedding

	// FailSave injects an error on Save
	FailSave error
}

// NewMockEmbeddingStore creates a new MockEmbeddingStore
func NewMockEmbeddingStore() *MockEmbeddingStore {
	return &MockEmbeddingStore{}
}

func (m *MockEmbeddingStore) Save(ctx context.Context, emb *domain.DocumentEmbedding) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *emb
	m.embeddings = append(m.embeddings, &cp)
	return nil
}

func (m *MockEmbeddingStore) List(ctx context.Context, docType domain.DocumentType) ([]*domain.DocumentEmbedding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.DocumentEmbedding
	for _, e := range m.embeddings {
		if docType != "" && e.DocumentType != docType {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockEmbeddingStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.embeddings[:0]
	for _, e := range m.embeddings {
		if e.DocumentID != documentID {
			kept = append(kept, e)
		}
	}
	m.embeddings = kept
	return nil
}
