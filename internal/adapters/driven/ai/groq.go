package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Ensure GroqCompleter implements ChatCompleter
var _ driven.ChatCompleter = (*GroqCompleter)(nil)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"

	// completionTemperature keeps answers close to the retrieved text.
	completionTemperature = 0.2
)

// GroqCompleter implements ChatCompleter against Groq's
// OpenAI-compatible chat completions API.
type GroqCompleter struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroqCompleter creates a new Groq chat completion client.
func NewGroqCompleter(apiKey, model, baseURL string) (*GroqCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}
	if model == "" {
		model = defaultGroqModel
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return &GroqCompleter{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chatMessage is one message in the completion request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the request body for the chat completions API
type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// completionResponse is the response from the chat completions API
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the system and user messages and returns the answer.
func (g *GroqCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := completionRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: completionTemperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var compResp completionResponse
	if err := json.Unmarshal(respBody, &compResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if compResp.Error != nil {
		return "", fmt.Errorf("Groq API error: %s (type: %s)",
			compResp.Error.Message, compResp.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Groq API returned status %d", resp.StatusCode)
	}
	if len(compResp.Choices) == 0 {
		return "", fmt.Errorf("Groq API returned no choices")
	}

	return compResp.Choices[0].Message.Content, nil
}

// Model returns the model name being used
func (g *GroqCompleter) Model() string {
	return g.model
}

// Ping verifies the API is reachable with a minimal completion.
func (g *GroqCompleter) Ping(ctx context.Context) error {
	_, err := g.Complete(ctx, "You are a health check.", "Reply with OK.")
	return err
}

// Close releases resources held by the client
func (g *GroqCompleter) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
