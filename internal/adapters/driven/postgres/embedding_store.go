package postgres

import (
	"context"
	"encoding/json"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore persists coarse per-document embeddings in PostgreSQL.
// Vectors are stored as JSON arrays; corpus-wide ranking loads them all
// into memory, so this stays viable at the three-documents-per-user
// scale the quota enforces.
type EmbeddingStore struct {
	db *DB
}

// NewEmbeddingStore creates a new EmbeddingStore
func NewEmbeddingStore(db *DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// Save upserts the embedding for a document
func (s *EmbeddingStore) Save(ctx context.Context, emb *domain.DocumentEmbedding) error {
	vectorJSON, err := json.Marshal(emb.Vector)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO document_embeddings (document_id, document_type, vector, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id) DO UPDATE SET
			document_type = EXCLUDED.document_type,
			vector = EXCLUDED.vector
	`

	_, err = s.db.ExecContext(ctx, query,
		emb.DocumentID,
		emb.DocumentType,
		vectorJSON,
		emb.CreatedAt,
	)
	return err
}

// List retrieves all embeddings, optionally filtered by document type.
// An empty docType returns the whole corpus.
func (s *EmbeddingStore) List(ctx context.Context, docType domain.DocumentType) ([]*domain.DocumentEmbedding, error) {
	query := `
		SELECT document_id, document_type, vector, created_at
		FROM document_embeddings
		WHERE $1 = '' OR document_type = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, string(docType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var embs []*domain.DocumentEmbedding
	for rows.Next() {
		var emb domain.DocumentEmbedding
		var vectorJSON []byte
		if err := rows.Scan(&emb.DocumentID, &emb.DocumentType, &vectorJSON, &emb.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(vectorJSON, &emb.Vector); err != nil {
			return nil, err
		}
		embs = append(embs, &emb)
	}
	return embs, rows.Err()
}

// DeleteByDocument removes the embedding for a document.
// Deleting a document with no stored embedding is not an error.
func (s *EmbeddingStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM document_embeddings WHERE document_id = $1`, documentID,
	)
	return err
}
