package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	healthErr error

	mu     sync.Mutex
	closed bool
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (s *stubEmbedder) Dimensions() int { return 2 }

func (s *stubEmbedder) HealthCheck(ctx context.Context) error { return s.healthErr }

func (s *stubEmbedder) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubEmbedder) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type stubCompleter struct {
	closed bool
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return "answer", nil
}

func (s *stubCompleter) Model() string { return "stub-model" }

func (s *stubCompleter) Ping(ctx context.Context) error { return nil }

func (s *stubCompleter) Close() error {
	s.closed = true
	return nil
}

func TestServices_StartEmpty(t *testing.T) {
	svc := NewServices()

	assert.Nil(t, svc.EmbeddingService())
	assert.Nil(t, svc.ChatCompleter())
}

func TestServices_SetEmbeddingClosesPrevious(t *testing.T) {
	svc := NewServices()

	first := &stubEmbedder{}
	second := &stubEmbedder{}

	svc.SetEmbeddingService(first)
	svc.SetEmbeddingService(second)

	assert.True(t, first.isClosed(), "replaced service should be closed")
	assert.False(t, second.isClosed())
	assert.Equal(t, second, svc.EmbeddingService())
}

func TestServices_ValidateAndSetEmbedding(t *testing.T) {
	svc := NewServices()

	healthy := &stubEmbedder{}
	require.NoError(t, svc.ValidateAndSetEmbedding(context.Background(), healthy))
	assert.Equal(t, healthy, svc.EmbeddingService())
}

func TestServices_ValidateAndSetEmbedding_UnhealthyRejected(t *testing.T) {
	svc := NewServices()

	healthy := &stubEmbedder{}
	require.NoError(t, svc.ValidateAndSetEmbedding(context.Background(), healthy))

	broken := &stubEmbedder{healthErr: errors.New("sidecar down")}
	err := svc.ValidateAndSetEmbedding(context.Background(), broken)

	require.Error(t, err)
	assert.True(t, broken.isClosed(), "rejected service should be closed")
	assert.Equal(t, healthy, svc.EmbeddingService(), "previous service should survive a failed swap")
}

func TestServices_ValidateAndSetEmbedding_NilClears(t *testing.T) {
	svc := NewServices()

	first := &stubEmbedder{}
	require.NoError(t, svc.ValidateAndSetEmbedding(context.Background(), first))
	require.NoError(t, svc.ValidateAndSetEmbedding(context.Background(), nil))

	assert.Nil(t, svc.EmbeddingService())
	assert.True(t, first.isClosed())
}

func TestServices_SetChatCompleterClosesPrevious(t *testing.T) {
	svc := NewServices()

	first := &stubCompleter{}
	second := &stubCompleter{}

	svc.SetChatCompleter(first)
	svc.SetChatCompleter(second)

	assert.True(t, first.closed)
	assert.Equal(t, second, svc.ChatCompleter())
}

func TestServices_ConcurrentAccess(t *testing.T) {
	svc := NewServices()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.SetEmbeddingService(&stubEmbedder{})
		}()
		go func() {
			defer wg.Done()
			_ = svc.EmbeddingService()
		}()
	}
	wg.Wait()

	assert.NotNil(t, svc.EmbeddingService())
}
