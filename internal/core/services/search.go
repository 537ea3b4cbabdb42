package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driving"
	"github.com/maviyashaikh25/Lawlense/internal/runtime"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService ranks the whole corpus of coarse document embeddings
// against a query vector in process. The per-chunk vector index covers
// passage retrieval for chat; this covers document-level search.
type searchService struct {
	embeddingStore driven.EmbeddingStore
	documentStore  driven.DocumentStore
	services       *runtime.Services
	logger         *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	embeddingStore driven.EmbeddingStore,
	documentStore driven.DocumentStore,
	services *runtime.Services,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		embeddingStore: embeddingStore,
		documentStore:  documentStore,
		services:       services,
		logger:         logger,
	}
}

// scored pairs a candidate with its similarity score.
type scored struct {
	documentID string
	score      float64
}

// Search embeds the query, scores every stored document embedding and
// returns the top results resolved to display fields.
func (s *searchService) Search(ctx context.Context, query string, docType domain.DocumentType) ([]*domain.RankedDocument, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return nil, domain.ErrServiceUnavailable
	}

	queryVector, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	candidates, err := s.embeddingStore.List(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("list embeddings: %w", err)
	}

	ranked := rank(queryVector, candidates, domain.SearchTopK)

	// Resolve display fields per result. A missing backing document is
	// reported on that item; the rest of the ranking stands.
	results := make([]*domain.RankedDocument, 0, len(ranked))
	for _, r := range ranked {
		result := &domain.RankedDocument{
			DocumentID: r.documentID,
			Score:      r.score,
		}
		doc, err := s.documentStore.Get(ctx, r.documentID)
		if err != nil {
			s.logger.Warn("ranked document lookup failed",
				"document_id", r.documentID,
				"error", err,
			)
			result.LookupError = err.Error()
		} else {
			result.Title = doc.Title
			result.Description = doc.Description
			result.DocumentType = doc.DocumentType
		}
		results = append(results, result)
	}

	return results, nil
}

// rank scores candidates against the query vector by cosine similarity
// and returns the top k in strictly descending score order. Ties keep
// input order. Never returns more than k results, nor fewer than
// min(k, len(candidates)).
func rank(query []float32, candidates []*domain.DocumentEmbedding, k int) []scored {
	results := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, scored{
			documentID: c.DocumentID,
			score:      CosineSimilarity(query, c.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// CosineSimilarity returns dot(a,b) / (|a|·|b|).
// Vectors of different lengths score exactly 0 rather than erroring, so
// an index holding mixed model versions degrades instead of crashing a
// query. A zero-magnitude vector also scores 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
