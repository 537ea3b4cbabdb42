package mocks

import (
	"context"
	"hash/fnv"
)

// MockEmbeddingService is a mock implementation of EmbeddingService for testing.
// It produces small deterministic vectors derived from the text hash so
// identical inputs embed identically across calls.
type MockEmbeddingService struct {
	dimensions int

	// Fixed, when set, is returned for every call instead of the
	// hash-derived vector
	Fixed []float32

	FailNext error

	EmbedCalls int
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{dimensions: 8}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	m.EmbedCalls++
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return nil, err
	}
	if m.Fixed != nil {
		return m.Fixed, nil
	}
	return m.generate(text), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	if m.Fixed != nil {
		return len(m.Fixed)
	}
	return m.dimensions
}

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockEmbeddingService) Close() error {
	return nil
}

func (m *MockEmbeddingService) generate(text string) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, m.dimensions)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(seed%1000)/1000.0 - 0.5
	}
	return vec
}
