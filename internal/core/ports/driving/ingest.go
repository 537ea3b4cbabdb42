package driving

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// IngestRequest describes one uploaded file to process.
type IngestRequest struct {
	UserID      string
	Title       string
	Description string

	// DocumentType is the user-declared type; the classifier may
	// overwrite it.
	DocumentType domain.DocumentType

	// FilePath is where the raw upload was stored.
	FilePath string

	// FileSize is the raw upload size in bytes.
	FileSize int64
}

// IngestService drives the document ingestion pipeline.
type IngestService interface {
	// Ingest runs the full pipeline for one uploaded document
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestResult, error)

	// Reprocess re-runs the enrichment stages for a persisted document
	// that never finished classification
	Reprocess(ctx context.Context, userID, documentID string) error

	// Reindex rebuilds a document's passage vectors
	Reindex(ctx context.Context, userID, documentID string) error

	// Delete removes a document, its raw file, its vectors and its
	// quota contribution
	Delete(ctx context.Context, userID, documentID string) error
}
