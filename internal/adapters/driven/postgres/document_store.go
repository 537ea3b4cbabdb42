package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, user_id, title, description, file_url, file_size,
	extracted_text, preprocessed_text, document_type, classification_confidence,
	summary, clauses, is_processed, created_at, updated_at`

// Create inserts a new document record
func (s *DocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	clausesJSON, err := json.Marshal(doc.Clauses)
	if err != nil {
		return err
	}
	if doc.Clauses == nil {
		clausesJSON = []byte("[]")
	}

	query := `
		INSERT INTO documents (id, user_id, title, description, file_url, file_size,
			extracted_text, preprocessed_text, document_type, classification_confidence,
			summary, clauses, is_processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.Description,
		doc.FileURL,
		doc.FileSize,
		doc.ExtractedText,
		doc.PreprocessedText,
		doc.DocumentType,
		doc.ClassificationConfidence,
		doc.Summary,
		clausesJSON,
		doc.IsProcessed,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// Update overwrites an existing document record
func (s *DocumentStore) Update(ctx context.Context, doc *domain.Document) error {
	clausesJSON, err := json.Marshal(doc.Clauses)
	if err != nil {
		return err
	}
	if doc.Clauses == nil {
		clausesJSON = []byte("[]")
	}

	query := `
		UPDATE documents SET
			title = $2,
			description = $3,
			file_url = $4,
			file_size = $5,
			extracted_text = $6,
			preprocessed_text = $7,
			document_type = $8,
			classification_confidence = $9,
			summary = $10,
			clauses = $11,
			is_processed = $12,
			updated_at = $13
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.FileURL,
		doc.FileSize,
		doc.ExtractedText,
		doc.PreprocessedText,
		doc.DocumentType,
		doc.ClassificationConfidence,
		doc.Summary,
		clausesJSON,
		doc.IsProcessed,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// GetOwned retrieves a document by ID scoped to its owner.
// Another user's document reads as not found.
func (s *DocumentStore) GetOwned(ctx context.Context, userID, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	return scanDocument(s.db.QueryRowContext(ctx, query, id, userID))
}

// ListByUser retrieves all of a user's documents, newest first
func (s *DocumentStore) ListByUser(ctx context.Context, userID string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListUnprocessed retrieves documents that never finished processing
// and are older than the given age in seconds.
func (s *DocumentStore) ListUnprocessed(ctx context.Context, olderThanSeconds int) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE NOT is_processed AND created_at < now() - ($1 * interval '1 second')
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, olderThanSeconds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// CountByUser returns the number of documents a user owns
func (s *DocumentStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

// Delete removes a document record
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocumentRow(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var clausesJSON []byte

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.Description,
		&doc.FileURL,
		&doc.FileSize,
		&doc.ExtractedText,
		&doc.PreprocessedText,
		&doc.DocumentType,
		&doc.ClassificationConfidence,
		&doc.Summary,
		&clausesJSON,
		&doc.IsProcessed,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(clausesJSON) > 0 {
		if err := json.Unmarshal(clausesJSON, &doc.Clauses); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentRow(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func scanDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
