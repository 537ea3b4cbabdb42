package pinecone

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

func testIndex(t *testing.T, handler http.HandlerFunc) (*Index, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	idx, err := NewIndex(Config{
		Host:       server.URL,
		APIKey:     "pc-test",
		Namespace:  "test-ns",
		Dimensions: 3,
	})
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	return idx, server.Close
}

func TestNewIndex_Validation(t *testing.T) {
	if _, err := NewIndex(Config{APIKey: "k"}); err == nil {
		t.Error("expected error for missing host")
	}
	if _, err := NewIndex(Config{Host: "https://idx.pinecone.io"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestIndex_Upsert(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vectors/upsert" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if key := r.Header.Get("Api-Key"); key != "pc-test" {
			t.Errorf("unexpected api key %q", key)
		}

		var req upsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Namespace != "test-ns" {
			t.Errorf("unexpected namespace %q", req.Namespace)
		}
		if len(req.Vectors) != 2 {
			t.Errorf("expected 2 vectors, got %d", len(req.Vectors))
		}
		if req.Vectors[0].ID != "doc-1_0" {
			t.Errorf("unexpected id %s", req.Vectors[0].ID)
		}
		if req.Vectors[0].Metadata.DocumentID != "doc-1" {
			t.Errorf("metadata missing document id")
		}
		w.Write([]byte(`{"upsertedCount":2}`))
	})
	defer cleanup()

	vectors := []domain.PassageVector{
		{ID: "doc-1_0", Values: []float32{1, 0, 0}, Metadata: domain.PassageMetadata{Text: "a", DocumentID: "doc-1"}},
		{ID: "doc-1_1", Values: []float32{0, 1, 0}, Metadata: domain.PassageMetadata{Text: "b", DocumentID: "doc-1"}},
	}
	if err := idx.Upsert(context.Background(), vectors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndex_Upsert_Empty(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty batch")
	})
	defer cleanup()

	if err := idx.Upsert(context.Background(), nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIndex_Upsert_DimensionMismatch(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for rejected batch")
	})
	defer cleanup()

	vectors := []domain.PassageVector{
		{ID: "doc-1_0", Values: []float32{1, 0}},
	}
	err := idx.Upsert(context.Background(), vectors)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestIndex_Query(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.TopK != 5 {
			t.Errorf("got topK %d, want 5", req.TopK)
		}
		if !req.IncludeMetadata {
			t.Error("expected includeMetadata")
		}

		w.Write([]byte(`{"matches":[
			{"id":"doc-1_0","score":0.93,"metadata":{"text":"passage text","documentId":"doc-1"}}
		]}`))
	})
	defer cleanup()

	matches, err := idx.Query(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ID != "doc-1_0" || matches[0].Score != 0.93 {
		t.Errorf("unexpected match %+v", matches[0])
	}
	if matches[0].Metadata.Text != "passage text" {
		t.Errorf("metadata lost: %+v", matches[0].Metadata)
	}
}

func TestIndex_DeleteByDocument(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vectors/delete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		filter, ok := req.Filter["documentId"].(map[string]any)
		if !ok || filter["$eq"] != "doc-1" {
			t.Errorf("unexpected filter %+v", req.Filter)
		}
		w.Write([]byte(`{}`))
	})
	defer cleanup()

	if err := idx.DeleteByDocument(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndex_ServerError(t *testing.T) {
	idx, cleanup := testIndex(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer cleanup()

	if _, err := idx.Query(context.Background(), []float32{1, 0, 0}, 5); err == nil {
		t.Error("expected error for failed query")
	}
}
