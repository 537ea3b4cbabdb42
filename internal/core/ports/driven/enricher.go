package driven

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// Enricher provides the remote document analysis models.
// Classify is required for ingestion to succeed; Summarize and
// ExtractClauses are best-effort and their failures are absorbed by
// the caller.
type Enricher interface {
	// Classify determines the document type
	Classify(ctx context.Context, text string) (*domain.Classification, error)

	// Summarize produces a short abstract of the document
	Summarize(ctx context.Context, text string) (string, error)

	// ExtractClauses pulls out risk-annotated clauses
	ExtractClauses(ctx context.Context, text string) ([]domain.Clause, error)
}
