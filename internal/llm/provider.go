package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider generates a single completion for a system + user conversation
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// CompletionRequest represents one relay call to the provider
type CompletionRequest struct {
	SystemPrompt string
	UserMessage  string
	MaxTokens    int
	Temperature  float32
}

// Completion is the provider's answer. Found is false when no choice carried text.
type Completion struct {
	Text             string
	Found            bool
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// ProviderError is a failure that carries an HTTP status from the provider
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider error: status %d: %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("provider error: status %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) HTTPStatusCode() int {
	return e.StatusCode
}

// AsProviderError reports whether err carries a structured provider failure
func AsProviderError(err error) (*ProviderError, bool) {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return nil, false
	}
	return perr, true
}
