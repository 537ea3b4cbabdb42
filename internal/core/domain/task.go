package domain

import "time"

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeReprocess re-runs enrichment for a document whose
	// classification failed after the record was persisted
	TaskTypeReprocess TaskType = "reprocess_document"

	// TaskTypeReindex rebuilds a document's passage vectors
	TaskTypeReindex TaskType = "reindex_document"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers
type Task struct {
	ID   string   `json:"id"`
	Type TaskType `json:"type"`

	// Payload contains task-specific data.
	// For reprocess_document and reindex_document: {"document_id": ..., "user_id": ...}
	Payload map[string]string `json:"payload"`

	Status TaskStatus `json:"status"`

	// Attempts is how many times this task has been attempted
	Attempts int `json:"attempts"`

	// MaxAttempts is the maximum retry count before giving up
	MaxAttempts int `json:"max_attempts"`

	// Error contains the last error message if failed
	Error string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ScheduledFor is when the task should be processed (for delayed tasks)
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewTask creates a new task with default values
func NewTask(taskType TaskType, payload map[string]string) *Task {
	now := time.Now()
	return &Task{
		ID:           GenerateID(),
		Type:         taskType,
		Payload:      payload,
		Status:       TaskStatusPending,
		MaxAttempts:  3,
		CreatedAt:    now,
		UpdatedAt:    now,
		ScheduledFor: now,
	}
}

// NewReprocessTask creates a task to re-run enrichment for a document.
func NewReprocessTask(userID, documentID string) *Task {
	return NewTask(TaskTypeReprocess, map[string]string{
		"document_id": documentID,
		"user_id":     userID,
	})
}

// NewReindexTask creates a task to rebuild a document's passage vectors.
func NewReindexTask(userID, documentID string) *Task {
	return NewTask(TaskTypeReindex, map[string]string{
		"document_id": documentID,
		"user_id":     userID,
	})
}

// MarkProcessing transitions the task to processing and counts the attempt.
func (t *Task) MarkProcessing() {
	t.Status = TaskStatusProcessing
	t.Attempts++
	t.UpdatedAt = time.Now()
}

// MarkCompleted transitions the task to completed.
func (t *Task) MarkCompleted() {
	t.Status = TaskStatusCompleted
	t.Error = ""
	t.UpdatedAt = time.Now()
}

// MarkFailed transitions the task to failed with the given reason.
func (t *Task) MarkFailed(reason string) {
	t.Status = TaskStatusFailed
	t.Error = reason
	t.UpdatedAt = time.Now()
}

// CanRetry reports whether the task has attempts remaining.
func (t *Task) CanRetry() bool {
	return t.Attempts < t.MaxAttempts
}

// Retry re-queues the task with exponential backoff.
func (t *Task) Retry(reason string) {
	t.Status = TaskStatusPending
	t.Error = reason
	t.UpdatedAt = time.Now()
	backoff := time.Duration(1<<uint(t.Attempts)) * time.Minute
	t.ScheduledFor = time.Now().Add(backoff)
}

// DocumentID extracts the document_id from the payload.
func (t *Task) DocumentID() string {
	if t.Payload == nil {
		return ""
	}
	return t.Payload["document_id"]
}

// UserID extracts the user_id from the payload.
func (t *Task) UserID() string {
	if t.Payload == nil {
		return ""
	}
	return t.Payload["user_id"]
}
