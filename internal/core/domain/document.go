package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// GenerateID creates a unique random ID.
func GenerateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// MaxDocumentsPerUser is the hard ceiling on stored documents per user.
const MaxDocumentsPerUser = 3

// MaxChunkSize is the maximum characters per indexed passage.
const MaxChunkSize = 1000

// DocumentType categorises a legal document.
type DocumentType string

const (
	DocumentTypeJudgement   DocumentType = "judgement"
	DocumentTypeAct         DocumentType = "act"
	DocumentTypeCase        DocumentType = "case"
	DocumentTypeNotes       DocumentType = "notes"
	DocumentTypeContract    DocumentType = "contract"
	DocumentTypeLegalNotice DocumentType = "legal_notice"
	DocumentTypeOther       DocumentType = "other"
)

// DefaultDocumentType is used when the classifier has not run yet
// and the uploader did not declare a type.
const DefaultDocumentType = DocumentTypeCase

// RiskLevel is the risk tier assigned to an extracted clause.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the risk level is one of the known tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Clause is a risk-annotated clause extracted from a document.
// Clauses have no independent lifecycle; they belong to exactly one document.
type Clause struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	OriginalText string    `json:"original_text"`
	Risk         RiskLevel `json:"risk"`
	Section      string    `json:"section"`
	Confidence   float64   `json:"confidence"`
}

// Document is an uploaded legal document and everything derived from it.
type Document struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// FileURL is the on-disk path of the raw uploaded file.
	FileURL string `json:"file_url"`

	// FileSize is the raw file size in bytes, recorded at upload time.
	// Quota decrements on delete use this value, never a re-measure,
	// so a missing file cannot drift the counter.
	FileSize int64 `json:"file_size"`

	ExtractedText    string `json:"extracted_text,omitempty"`
	PreprocessedText string `json:"preprocessed_text,omitempty"`

	DocumentType             DocumentType `json:"document_type"`
	ClassificationConfidence float64      `json:"classification_confidence,omitempty"`

	// Summary is AI generated and may be empty when summarisation failed.
	Summary string `json:"summary,omitempty"`

	// Clauses may be empty when clause extraction failed.
	Clauses []Clause `json:"clauses,omitempty"`

	// IsProcessed becomes true once classification has succeeded.
	// Summary, clauses and embeddings are allowed to be missing.
	IsProcessed bool `json:"is_processed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentEmbedding is the coarse whole-document vector used for
// corpus-wide semantic search.
type DocumentEmbedding struct {
	DocumentID   string       `json:"document_id"`
	Vector       []float32    `json:"vector"`
	DocumentType DocumentType `json:"document_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Classification is the typed result of the classifier.
type Classification struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
}
