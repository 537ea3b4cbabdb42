package pinecone

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

// Ensure Index implements VectorIndex
var _ driven.VectorIndex = (*Index)(nil)

// Index is an HTTP client for a Pinecone serverless index holding
// per-chunk passage vectors.
type Index struct {
	host       string
	apiKey     string
	namespace  string
	dimensions int
	client     *http.Client
}

// Config holds Pinecone connection configuration
type Config struct {
	// Host is the index endpoint (https://name-project.svc.region.pinecone.io)
	Host string

	// APIKey authenticates every request
	APIKey string

	// Namespace partitions vectors within the index. Optional.
	Namespace string

	// Dimensions is the index's vector dimension. Upserts with a
	// different dimension are rejected locally before hitting the API.
	Dimensions int
}

// NewIndex creates a new Pinecone index client.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}

	return &Index{
		host:       cfg.Host,
		apiKey:     cfg.APIKey,
		namespace:  cfg.Namespace,
		dimensions: cfg.Dimensions,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type upsertRequest struct {
	Vectors   []domain.PassageVector `json:"vectors"`
	Namespace string                 `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Namespace       string         `json:"namespace,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Filter          map[string]any `json:"filter,omitempty"`
}

type queryResponse struct {
	Matches []domain.PassageMatch `json:"matches"`
}

type deleteRequest struct {
	Filter    map[string]any `json:"filter,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
	DeleteAll bool           `json:"deleteAll,omitempty"`
}

// Upsert writes passage vectors in one batch call.
// An empty batch is a no-op.
func (i *Index) Upsert(ctx context.Context, vectors []domain.PassageVector) error {
	if len(vectors) == 0 {
		return nil
	}

	// Reject dimension mismatches locally; the API error for these is
	// opaque and the caller can do nothing useful with half a batch.
	if i.dimensions > 0 {
		for _, v := range vectors {
			if len(v.Values) != i.dimensions {
				return fmt.Errorf("%w: vector %s has %d dimensions, index expects %d",
					domain.ErrDimensionMismatch, v.ID, len(v.Values), i.dimensions)
			}
		}
	}

	return i.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: i.namespace,
	}, nil)
}

// Query returns the topK nearest neighbours with metadata.
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.PassageMatch, error) {
	var resp queryResponse
	err := i.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		Namespace:       i.namespace,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// DeleteByDocument removes every passage vector tied to a document
// using a metadata filter.
func (i *Index) DeleteByDocument(ctx context.Context, documentID string) error {
	return i.post(ctx, "/vectors/delete", deleteRequest{
		Filter:    map[string]any{"documentId": map[string]any{"$eq": documentID}},
		Namespace: i.namespace,
	}, nil)
}

// HealthCheck verifies the index is reachable.
func (i *Index) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", i.host+"/describe_index_stats", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone returned status %d", resp.StatusCode)
	}
	return nil
}

// post sends a JSON request to a Pinecone endpoint.
func (i *Index) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone %s returned status %d: %s", path, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
