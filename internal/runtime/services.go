package runtime

import (
	"context"
	"sync"

	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Services holds references to the remote AI capability providers.
// Embedding and chat completion can be absent (e.g. the ML sidecar or
// the completion API key is not configured); the ingestion pipeline
// skips its best-effort stages and the read paths report unavailable.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	embeddingService driven.EmbeddingService
	chatCompleter    driven.ChatCompleter
}

// NewServices creates a new Services registry
func NewServices() *Services {
	return &Services{}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// ChatCompleter returns the current chat completion service (may be nil)
func (s *Services) ChatCompleter() driven.ChatCompleter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatCompleter
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetChatCompleter updates the chat completion service.
// Closes the old service if present.
func (s *Services) SetChatCompleter(svc driven.ChatCompleter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chatCompleter != nil {
		_ = s.chatCompleter.Close()
	}
	s.chatCompleter = svc
}

// ValidateAndSetEmbedding validates connectivity before setting the
// embedding service.
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetChatCompleter validates connectivity before setting the
// chat completion service.
func (s *Services) ValidateAndSetChatCompleter(ctx context.Context, svc driven.ChatCompleter) error {
	if svc == nil {
		s.SetChatCompleter(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetChatCompleter(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.chatCompleter != nil {
		_ = s.chatCompleter.Close()
		s.chatCompleter = nil
	}

	return nil
}
