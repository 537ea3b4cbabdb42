package mocks

import (
	"context"
	"sync"
)

// MockChatCompleter is a mock implementation of ChatCompleter for testing
type MockChatCompleter struct {
	mu sync.Mutex

	// Response is returned from Complete
	Response string

	FailNext error

	// Prompts records every (system, user) pair passed to Complete
	Prompts [][2]string
}

// NewMockChatCompleter creates a new MockChatCompleter
func NewMockChatCompleter() *MockChatCompleter {
	return &MockChatCompleter{Response: "mock answer"}
}

func (m *MockChatCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, [2]string{system, user})
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return "", err
	}
	return m.Response, nil
}

func (m *MockChatCompleter) Model() string {
	return "mock-chat-model"
}

func (m *MockChatCompleter) Ping(ctx context.Context) error {
	return nil
}

func (m *MockChatCompleter) Close() error {
	return nil
}
