package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Ensure MLService implements both ports it serves
var _ driven.Enricher = (*MLService)(nil)
var _ driven.EmbeddingService = (*MLService)(nil)

// sidecarTimeout bounds every sidecar call. The model endpoints answer
// in well under a second when healthy; anything slower is treated as an
// outage so ingestion fails fast instead of hanging uploads.
const sidecarTimeout = 5 * time.Second

// MLService is an HTTP client for the model sidecar that serves
// classification, summarisation, clause extraction and embeddings.
type MLService struct {
	baseURL    string
	dimensions int
	client     *http.Client
}

// NewMLService creates a new sidecar client.
func NewMLService(baseURL string, dimensions int) (*MLService, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ml service URL is required")
	}
	if dimensions <= 0 {
		dimensions = 384
	}

	return &MLService{
		baseURL:    baseURL,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: sidecarTimeout,
		},
	}, nil
}

// textRequest is the request body shared by all sidecar endpoints
type textRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// The sidecar returns extracted clauses as a bare JSON list.
type clauseResponse struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	OriginalText string  `json:"original_text"`
	Risk         string  `json:"risk"`
	Section      string  `json:"section"`
	Confidence   float64 `json:"confidence"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Classify determines the document type of the given text.
func (m *MLService) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	var resp classifyResponse
	if err := m.post(ctx, "/classify", text, &resp); err != nil {
		return nil, err
	}
	if resp.DocumentType == "" {
		return nil, fmt.Errorf("classifier returned no document type")
	}

	return &domain.Classification{
		DocumentType: domain.DocumentType(resp.DocumentType),
		Confidence:   resp.Confidence,
	}, nil
}

// Summarize produces a plain-language summary of the text.
func (m *MLService) Summarize(ctx context.Context, text string) (string, error) {
	var resp summarizeResponse
	if err := m.post(ctx, "/summarize", text, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// ExtractClauses pulls structured clauses out of the text.
func (m *MLService) ExtractClauses(ctx context.Context, text string) ([]domain.Clause, error) {
	var resp []clauseResponse
	if err := m.post(ctx, "/extract_clauses", text, &resp); err != nil {
		return nil, err
	}

	clauses := make([]domain.Clause, 0, len(resp))
	for _, c := range resp {
		risk := domain.RiskLevel(c.Risk)
		if !risk.Valid() {
			risk = domain.RiskMedium
		}
		clauses = append(clauses, domain.Clause{
			Title:        c.Title,
			Description:  c.Description,
			OriginalText: c.OriginalText,
			Risk:         risk,
			Section:      c.Section,
			Confidence:   c.Confidence,
		})
	}
	return clauses, nil
}

// Embed generates an embedding vector for the text.
func (m *MLService) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	if err := m.post(ctx, "/embed", text, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("embedder returned empty vector")
	}
	return resp.Embedding, nil
}

// Dimensions returns the embedding dimension size
func (m *MLService) Dimensions() int {
	return m.dimensions
}

// HealthCheck verifies the sidecar is reachable and serving embeddings.
func (m *MLService) HealthCheck(ctx context.Context) error {
	_, err := m.Embed(ctx, "health check")
	return err
}

// Close releases resources held by the client
func (m *MLService) Close() error {
	m.client.CloseIdleConnections()
	return nil
}

// post sends a text payload to a sidecar endpoint and decodes the reply.
func (m *MLService) post(ctx context.Context, path, text string, out any) error {
	body, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("ml service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service %s returned status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
