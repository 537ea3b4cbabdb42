package mocks

import "context"

// MockExtractor is a mock implementation of TextExtractor for testing
type MockExtractor struct {
	// Text is returned for every Extract call
	Text string

	ExtractCalls int
}

// NewMockExtractor creates a new MockExtractor
func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{Text: text}
}

func (m *MockExtractor) Extract(ctx context.Context, path string) string {
	m.ExtractCalls++
	return m.Text
}
