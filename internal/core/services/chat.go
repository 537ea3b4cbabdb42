package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driving"
	"github.com/maviyashaikh25/Lawlense/internal/runtime"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// systemMessage is the fixed system role content for every completion.
const systemMessage = "You are a helpful legal assistant."

// promptTemplate grounds the model in the retrieved passages. The
// not-found phrasing is part of the contract: callers rely on it when
// retrieval produced nothing useful.
const promptTemplate = `You are a legal AI assistant.
Answer the question strictly using the provided context.
If the answer is not present, say "Information not found in the document."

Context:
%s

Question:
%s

Answer:
`

// chatService answers questions by retrieving the most relevant
// passages from the vector index and conditioning the completion model
// on them.
type chatService struct {
	vectorIndex driven.VectorIndex
	chatStore   driven.ChatStore
	services    *runtime.Services
	logger      *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	vectorIndex driven.VectorIndex,
	chatStore driven.ChatStore,
	services *runtime.Services,
	logger *slog.Logger,
) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		vectorIndex: vectorIndex,
		chatStore:   chatStore,
		services:    services,
		logger:      logger,
	}
}

// Ask runs the retrieval-augmented answer pipeline. Any stage failing
// surfaces as a single answer-generation error; there is no partial or
// cached fallback.
func (s *chatService) Ask(ctx context.Context, userID, question string) (string, error) {
	if question == "" {
		return "", domain.ErrInvalidInput
	}

	completer := s.services.ChatCompleter()
	if completer == nil {
		return "", domain.ErrServiceUnavailable
	}

	matches, err := s.retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAnswerGeneration, err)
	}

	prompt := fmt.Sprintf(promptTemplate, buildContext(matches), question)

	answer, err := completer.Complete(ctx, systemMessage, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAnswerGeneration, err)
	}

	// History persistence must not fail an already-generated answer.
	exchange := &domain.ChatExchange{
		ID:        domain.GenerateID(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	if err := s.chatStore.Save(ctx, exchange); err != nil {
		s.logger.Warn("failed to save chat exchange", "user_id", userID, "error", err)
	}

	return answer, nil
}

// retrieve embeds the question and queries the vector index for the
// most relevant passages.
func (s *chatService) retrieve(ctx context.Context, question string) ([]domain.PassageMatch, error) {
	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return nil, domain.ErrServiceUnavailable
	}

	vector, err := embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	matches, err := s.vectorIndex.Query(ctx, vector, domain.SearchTopK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return matches, nil
}

// buildContext concatenates passages in retrieval order as numbered
// sources separated by blank lines. No re-sorting, no deduplication.
func buildContext(matches []domain.PassageMatch) string {
	parts := make([]string, 0, len(matches))
	for i, m := range matches {
		text := m.Metadata.Text
		if text == "" {
			text = "No text available"
		}
		parts = append(parts, fmt.Sprintf("Source %d: %s", i+1, text))
	}
	return strings.Join(parts, "\n\n")
}

// History returns the user's past exchanges, newest first.
func (s *chatService) History(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.chatStore.ListByUser(ctx, userID, limit)
}
