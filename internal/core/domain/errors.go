package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrQuotaExceeded indicates the user hit the document ceiling.
	// It is raised before any processing side effects.
	ErrQuotaExceeded = errors.New("upload limit reached")

	// ErrClassificationFailed indicates the classifier call failed.
	// Classification failure is fatal to ingestion.
	ErrClassificationFailed = errors.New("classification failed")

	// ErrEnrichmentFailed indicates a best-effort enrichment call
	// (summary, clauses) failed or returned a malformed response
	ErrEnrichmentFailed = errors.New("enrichment failed")

	// ErrEmbeddingUnavailable indicates the embedding service could not
	// produce a vector
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrIndexUnavailable indicates the vector index could not be reached
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrAnswerGeneration indicates the RAG answer pipeline failed
	ErrAnswerGeneration = errors.New("answer generation failed")

	// ErrDimensionMismatch indicates vectors of different dimensionality
	// were written to the same index
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrTaskNotFound indicates the queue has no such task
	ErrTaskNotFound = errors.New("task not found")

	// ErrServiceUnavailable indicates a required AI service is not configured
	ErrServiceUnavailable = errors.New("service unavailable")
)
