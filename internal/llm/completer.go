// Package llm provides clients for the external language-model services the
// pipeline depends on: a chat-completion Completer used for answer generation
// and re-ranking, and an embeddings client used for query and chunk vectors.
// The Completer has two implementations, a real OpenAI-backed provider and an
// Unavailable null provider, selected at construction time so callers degrade
// gracefully when no API key is configured.
package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks docqa/internal/llm Completer

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned by the null provider. Callers treat it as
	// "no LLM configured" and take their defined degraded path.
	ErrUnavailable = errors.New("llm provider not configured")
	// ErrCompletion is returned when a configured provider fails a call.
	ErrCompletion = errors.New("llm completion failed")
)

// CompletionParams holds per-call generation parameters.
type CompletionParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, the provider default applies.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float64
}

// Completer is the chat-completion interface consumed by the RAG pipeline.
// Implementations must be safe for concurrent use.
type Completer interface {
	// Complete sends a system prompt and a user prompt to the model and
	// returns the generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string, params CompletionParams) (string, error)
}

// Unavailable is a Completer for deployments without a configured provider.
// Every call fails with ErrUnavailable, which downstream code maps to the
// defined degraded response rather than an error surfaced to callers.
type Unavailable struct{}

// NewUnavailable creates the null provider.
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// Complete always returns ErrUnavailable.
func (u *Unavailable) Complete(ctx context.Context, systemPrompt, userPrompt string, params CompletionParams) (string, error) {
	return "", ErrUnavailable
}
