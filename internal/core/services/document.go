package services

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore driven.DocumentStore
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentStore driven.DocumentStore) driving.DocumentService {
	return &documentService{documentStore: documentStore}
}

// Get retrieves a document owned by the user
func (s *documentService) Get(ctx context.Context, userID, id string) (*domain.Document, error) {
	return s.documentStore.GetOwned(ctx, userID, id)
}

// List retrieves all of a user's documents, newest first
func (s *documentService) List(ctx context.Context, userID string) ([]*domain.Document, error) {
	return s.documentStore.ListByUser(ctx, userID)
}
