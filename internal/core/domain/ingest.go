package domain

// IngestStage names a step of the document ingestion pipeline.
// The pipeline is strictly sequential per document; the transition table
// below is the single source of truth for which stage may follow which.
type IngestStage string

const (
	StageAccepted     IngestStage = "accepted"
	StageQuotaChecked IngestStage = "quota_checked"
	StageExtracted    IngestStage = "extracted"
	StageNormalized   IngestStage = "normalized"
	StageClassified   IngestStage = "classified"
	StageSummarized   IngestStage = "summarized"
	StageClauses      IngestStage = "clauses_extracted"
	StagePersisted    IngestStage = "persisted"
	StageIndexed      IngestStage = "indexed"
	StageComplete     IngestStage = "complete"
)

// ingestTransitions lists the allowed successor stages.
// Skipped best-effort stages still pass through their slot so the
// sequence is identical whether or not an enrichment succeeded.
var ingestTransitions = map[IngestStage]IngestStage{
	StageAccepted:     StageQuotaChecked,
	StageQuotaChecked: StageExtracted,
	StageExtracted:    StageNormalized,
	StageNormalized:   StageClassified,
	StageClassified:   StageSummarized,
	StageSummarized:   StageClauses,
	StageClauses:      StagePersisted,
	StagePersisted:    StageIndexed,
	StageIndexed:      StageComplete,
}

// Next returns the stage that follows s, or s itself when the
// pipeline is complete.
func (s IngestStage) Next() IngestStage {
	next, ok := ingestTransitions[s]
	if !ok {
		return s
	}
	return next
}

// ingestFatal records which stages abort the whole ingestion on failure.
// Everything else degrades: the derived field stays empty and the
// pipeline moves on.
var ingestFatal = map[IngestStage]bool{
	StageAccepted:     true,
	StageQuotaChecked: true,
	StageClassified:   true,
	StagePersisted:    true,
}

// Fatal reports whether a failure at this stage aborts ingestion.
func (s IngestStage) Fatal() bool {
	return ingestFatal[s]
}

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	DocumentID string      `json:"document_id"`
	Stage      IngestStage `json:"stage"`

	// Skipped lists best-effort stages that failed and were left empty.
	Skipped []IngestStage `json:"skipped,omitempty"`

	ChunksIndexed int `json:"chunks_indexed"`
}
