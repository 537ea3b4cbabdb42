package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

func TestNewMLService_RequiresURL(t *testing.T) {
	_, err := NewMLService("", 384)
	if err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestNewMLService_DefaultDimensions(t *testing.T) {
	svc, err := NewMLService("http://localhost:8000", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Dimensions() != 384 {
		t.Errorf("expected default 384 dimensions, got %d", svc.Dimensions())
	}
}

func TestMLService_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req textRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Text != "some legal text" {
			t.Errorf("unexpected text %q", req.Text)
		}
		json.NewEncoder(w).Encode(classifyResponse{
			DocumentType: "contract",
			Confidence:   0.91,
		})
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)

	result, err := svc.Classify(context.Background(), "some legal text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DocumentType != domain.DocumentTypeContract {
		t.Errorf("got %s, want contract", result.DocumentType)
	}
	if result.Confidence != 0.91 {
		t.Errorf("got confidence %v, want 0.91", result.Confidence)
	}
}

func TestMLService_Classify_MissingType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(classifyResponse{})
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	if _, err := svc.Classify(context.Background(), "text"); err == nil {
		t.Error("expected error for empty document type")
	}
}

func TestMLService_Classify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	if _, err := svc.Classify(context.Background(), "text"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestMLService_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(summarizeResponse{Summary: "a short summary"})
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	summary, err := svc.Summarize(context.Background(), "long text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "a short summary" {
		t.Errorf("got %q", summary)
	}
}

func TestMLService_ExtractClauses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract_clauses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// The sidecar responds with a bare list, not a wrapper object.
		w.Write([]byte(`[
			{"title":"Termination","description":"Either party may terminate.","original_text":"Either party may terminate this agreement.","risk":"high","section":"12.1","confidence":0.8},
			{"title":"Unknown risk","description":"d","risk":"bogus","confidence":0.5}
		]`))
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	clauses, err := svc.ExtractClauses(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Risk != domain.RiskHigh {
		t.Errorf("got risk %s, want high", clauses[0].Risk)
	}
	if clauses[0].Section != "12.1" {
		t.Errorf("got section %s, want 12.1", clauses[0].Section)
	}
	// Unrecognized risk levels normalize to medium
	if clauses[1].Risk != domain.RiskMedium {
		t.Errorf("got risk %s, want medium fallback", clauses[1].Risk)
	}
}

func TestMLService_ExtractClauses_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	clauses, err := svc.ExtractClauses(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clauses) != 0 {
		t.Errorf("expected no clauses, got %d", len(clauses))
	}
}

func TestMLService_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 3)
	vec, err := svc.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("got %d dims, want 3", len(vec))
	}
}

func TestMLService_Embed_EmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer server.Close()

	svc, _ := NewMLService(server.URL, 384)
	if _, err := svc.Embed(context.Background(), "text"); err == nil {
		t.Error("expected error for empty embedding")
	}
}
