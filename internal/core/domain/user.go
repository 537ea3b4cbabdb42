package domain

import "time"

// User is an account that owns documents and chat history.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// StorageUsed is cumulative raw-file bytes for this user.
	// Incremented exactly once per upload and decremented by the
	// byte count recorded at upload time on delete.
	StorageUsed int64 `json:"storage_used"`

	// AIQueriesUsed counts billable AI calls (one per successful
	// classification).
	AIQueriesUsed int64 `json:"ai_queries_used"`
}
