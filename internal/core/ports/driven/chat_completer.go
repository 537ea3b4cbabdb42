package driven

import "context"

// ChatCompleter invokes a remote chat-completion model (Groq).
type ChatCompleter interface {
	// Complete sends one system + user message pair and returns the
	// model's single top response verbatim.
	Complete(ctx context.Context, system, user string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the completion service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the service
	Close() error
}
