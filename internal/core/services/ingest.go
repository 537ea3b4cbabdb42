package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driving"
	"github.com/maviyashaikh25/Lawlense/internal/runtime"
	"github.com/maviyashaikh25/Lawlense/internal/textproc"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// embedWorkers bounds concurrent per-chunk embedding calls so the
// remote service's rate limits are respected.
const embedWorkers = 4

// ingestService drives a document through the ingestion pipeline:
// quota check → extract → normalize → classify → summarize → clauses →
// persist → embed + index. Classification failure aborts; summary,
// clauses and indexing degrade to empty fields.
type ingestService struct {
	documentStore  driven.DocumentStore
	embeddingStore driven.EmbeddingStore
	userStore      driven.UserStore
	extractor      driven.TextExtractor
	enricher       driven.Enricher
	vectorIndex    driven.VectorIndex
	taskQueue      driven.TaskQueue
	services       *runtime.Services
	logger         *slog.Logger

	// removeFile deletes the raw uploaded file; overridable in tests.
	removeFile func(path string) error
}

// IngestServiceConfig holds dependencies for the ingest service.
type IngestServiceConfig struct {
	DocumentStore  driven.DocumentStore
	EmbeddingStore driven.EmbeddingStore
	UserStore      driven.UserStore
	Extractor      driven.TextExtractor
	Enricher       driven.Enricher
	VectorIndex    driven.VectorIndex
	TaskQueue      driven.TaskQueue
	Services       *runtime.Services
	Logger         *slog.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(cfg IngestServiceConfig) driving.IngestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ingestService{
		documentStore:  cfg.DocumentStore,
		embeddingStore: cfg.EmbeddingStore,
		userStore:      cfg.UserStore,
		extractor:      cfg.Extractor,
		enricher:       cfg.Enricher,
		vectorIndex:    cfg.VectorIndex,
		taskQueue:      cfg.TaskQueue,
		services:       cfg.Services,
		logger:         logger,
		removeFile:     os.Remove,
	}
}

// Ingest runs the full pipeline for one uploaded document.
func (s *ingestService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	logger := s.logger.With("user_id", req.UserID, "title", req.Title)
	stage := domain.StageAccepted

	// Quota ceiling is enforced before any side effect or remote call.
	count, err := s.documentStore.CountByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count >= domain.MaxDocumentsPerUser {
		return nil, domain.ErrQuotaExceeded
	}
	stage = stage.Next() // quota_checked

	docType := req.DocumentType
	if docType == "" {
		docType = domain.DefaultDocumentType
	}

	now := time.Now()
	doc := &domain.Document{
		ID:           domain.GenerateID(),
		UserID:       req.UserID,
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FilePath,
		FileSize:     req.FileSize,
		DocumentType: docType,
		IsProcessed:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.documentStore.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	// Storage is charged exactly once, before processing, so a later
	// failure cannot under-report quota usage.
	if err := s.userStore.AdjustStorage(ctx, req.UserID, req.FileSize); err != nil {
		return nil, fmt.Errorf("adjust storage: %w", err)
	}

	logger = logger.With("document_id", doc.ID)

	// Extraction never aborts: an empty text result is accepted so the
	// document is still stored and visible to its owner.
	text := s.extractor.Extract(ctx, req.FilePath)
	if text == "" {
		logger.Warn("no text extracted, continuing with empty content")
	}
	stage = stage.Next() // extracted

	doc.ExtractedText = text
	doc.PreprocessedText = textproc.Normalize(text)
	stage = stage.Next() // normalized

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingestion cancelled: %w", err)
	}

	skipped, err := s.enrich(ctx, doc, logger)
	if err != nil {
		// The record stays persisted but unprocessed; a reprocess task
		// gives it a retry path instead of leaving it stuck forever.
		s.enqueueReprocess(ctx, doc, logger)
		return nil, err
	}
	stage = domain.StagePersisted

	doc.IsProcessed = true
	doc.UpdatedAt = time.Now()
	if err := s.documentStore.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("persist processed document: %w", err)
	}

	chunks, indexSkipped := s.index(ctx, doc, logger)
	if indexSkipped {
		skipped = append(skipped, domain.StageIndexed)
	}
	stage = domain.StageComplete

	logger.Info("ingestion complete",
		"document_type", doc.DocumentType,
		"chunks_indexed", chunks,
		"skipped", len(skipped),
	)

	return &domain.IngestResult{
		DocumentID:    doc.ID,
		Stage:         stage,
		Skipped:       skipped,
		ChunksIndexed: chunks,
	}, nil
}

// enrich runs classification (fatal) and the best-effort summary and
// clause stages, mutating doc in place.
func (s *ingestService) enrich(ctx context.Context, doc *domain.Document, logger *slog.Logger) ([]domain.IngestStage, error) {
	var skipped []domain.IngestStage

	// fail routes a stage error through the domain fatality policy:
	// a fatal stage aborts ingestion, the rest are recorded as skipped.
	fail := func(stage domain.IngestStage, err error) error {
		if stage.Fatal() {
			logger.Error("stage failed", "stage", string(stage), "error", err)
			return err
		}
		logger.Warn("stage failed, continuing", "stage", string(stage), "error", err)
		skipped = append(skipped, stage)
		return nil
	}

	classification, err := s.enricher.Classify(ctx, doc.PreprocessedText)
	if err != nil {
		if ferr := fail(domain.StageClassified, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)); ferr != nil {
			return nil, ferr
		}
	} else {
		doc.DocumentType = classification.DocumentType
		doc.ClassificationConfidence = classification.Confidence

		// One billable AI call per successful classification.
		if err := s.userStore.IncrementAIQueries(ctx, doc.UserID); err != nil {
			logger.Warn("failed to increment ai query counter", "error", err)
		}
	}

	summary, err := s.enricher.Summarize(ctx, doc.PreprocessedText)
	if err != nil {
		if ferr := fail(domain.StageSummarized, err); ferr != nil {
			return nil, ferr
		}
	} else {
		doc.Summary = summary
	}

	clauses, err := s.enricher.ExtractClauses(ctx, doc.PreprocessedText)
	if err != nil {
		if ferr := fail(domain.StageClauses, err); ferr != nil {
			return nil, ferr
		}
	} else {
		doc.Clauses = clauses
	}

	return skipped, nil
}

// index generates the coarse whole-document embedding and upserts the
// per-chunk passage vectors. Every failure here is absorbed: the
// document is already durable and ingestion must not fail because the
// optional semantic index could not be populated.
func (s *ingestService) index(ctx context.Context, doc *domain.Document, logger *slog.Logger) (int, bool) {
	embedder := s.services.EmbeddingService()
	if embedder == nil {
		logger.Warn("embedding service not configured, skipping indexing")
		return 0, true
	}

	skipped := false

	vector, err := embedder.Embed(ctx, doc.PreprocessedText)
	if err != nil {
		logger.Warn("document embedding failed, continuing", "error", err)
		skipped = true
	} else {
		emb := &domain.DocumentEmbedding{
			DocumentID:   doc.ID,
			Vector:       vector,
			DocumentType: doc.DocumentType,
			CreatedAt:    time.Now(),
		}
		if err := s.embeddingStore.Save(ctx, emb); err != nil {
			logger.Warn("failed to save document embedding", "error", err)
			skipped = true
		}
	}

	chunks, err := s.upsertPassages(ctx, doc)
	if err != nil {
		logger.Warn("passage indexing failed, continuing", "error", err)
		return chunks, true
	}

	return chunks, skipped
}

// upsertPassages chunks the document text, embeds each chunk and writes
// all successfully embedded chunks to the vector index in one batch.
// Per-chunk embedding failures skip that chunk only; zero surviving
// chunks is a silent no-op.
func (s *ingestService) upsertPassages(ctx context.Context, doc *domain.Document) (int, error) {
	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return 0, nil
	}

	chunks := textproc.Chunk(doc.PreprocessedText, domain.MaxChunkSize)
	if len(chunks) == 0 {
		return 0, nil
	}

	// Chunk embeddings are independent; dispatch them with a bounded
	// worker pool. Each vector carries its own index-derived key so
	// completion order does not matter.
	vectors := make([]*domain.PassageVector, len(chunks))
	sem := make(chan struct{}, embedWorkers)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		if chunk == "" {
			continue
		}
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, err := embedder.Embed(ctx, chunk)
			if err != nil {
				s.logger.Warn("failed to embed chunk, skipping",
					"document_id", doc.ID,
					"chunk_index", i,
					"error", err,
				)
				return
			}
			vectors[i] = &domain.PassageVector{
				ID:     fmt.Sprintf("%s_%d", doc.ID, i),
				Values: vec,
				Metadata: domain.PassageMetadata{
					Text:         chunk,
					DocumentID:   doc.ID,
					DocumentType: doc.DocumentType,
				},
			}
		}(i, chunk)
	}
	wg.Wait()

	var batch []domain.PassageVector
	for _, v := range vectors {
		if v != nil {
			batch = append(batch, *v)
		}
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.vectorIndex.Upsert(ctx, batch); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	return len(batch), nil
}

// Reprocess re-runs enrichment and indexing for a persisted document
// whose classification previously failed.
func (s *ingestService) Reprocess(ctx context.Context, userID, documentID string) error {
	logger := s.logger.With("document_id", documentID, "user_id", userID)

	doc, err := s.documentStore.GetOwned(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if doc.IsProcessed {
		return nil
	}

	if doc.PreprocessedText == "" && doc.ExtractedText != "" {
		doc.PreprocessedText = textproc.Normalize(doc.ExtractedText)
	}

	if _, err := s.enrich(ctx, doc, logger); err != nil {
		return err
	}

	doc.IsProcessed = true
	doc.UpdatedAt = time.Now()
	if err := s.documentStore.Update(ctx, doc); err != nil {
		return fmt.Errorf("persist reprocessed document: %w", err)
	}

	s.index(ctx, doc, logger)
	return nil
}

// Reindex rebuilds a document's passage vectors from scratch.
func (s *ingestService) Reindex(ctx context.Context, userID, documentID string) error {
	logger := s.logger.With("document_id", documentID, "user_id", userID)

	doc, err := s.documentStore.GetOwned(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := s.vectorIndex.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	chunks, err := s.upsertPassages(ctx, doc)
	if err != nil {
		return err
	}

	logger.Info("document reindexed", "chunks_indexed", chunks)
	return nil
}

// Delete removes a document, its raw file, its derived vectors and its
// quota contribution, in that order. Steps that fail after partial
// completion are reported together; there is no transactional rollback.
func (s *ingestService) Delete(ctx context.Context, userID, documentID string) error {
	// Ownership check prevents cross-user deletion.
	doc, err := s.documentStore.GetOwned(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	var errs []error

	if doc.FileURL != "" {
		if err := s.removeFile(doc.FileURL); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove file: %w", err))
		}
	}

	if err := s.vectorIndex.DeleteByDocument(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("delete passage vectors: %w", err))
	}

	if err := s.embeddingStore.DeleteByDocument(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("delete document embedding: %w", err))
	}

	// Decrement by the byte count recorded at upload time, never a
	// re-measure, so a missing file cannot drift the counter.
	if doc.FileSize > 0 {
		if err := s.userStore.AdjustStorage(ctx, userID, -doc.FileSize); err != nil {
			errs = append(errs, fmt.Errorf("adjust storage: %w", err))
		}
	}

	if err := s.documentStore.Delete(ctx, documentID); err != nil {
		errs = append(errs, fmt.Errorf("delete document record: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete document %s: %w", documentID, errors.Join(errs...))
	}

	s.logger.Info("document deleted", "document_id", documentID, "user_id", userID)
	return nil
}

// enqueueReprocess queues a retry for a document stuck unprocessed.
func (s *ingestService) enqueueReprocess(ctx context.Context, doc *domain.Document, logger *slog.Logger) {
	if s.taskQueue == nil {
		return
	}
	task := domain.NewReprocessTask(doc.UserID, doc.ID)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		logger.Warn("failed to enqueue reprocess task", "error", err)
	}
}
