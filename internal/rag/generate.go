package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
)

const (
	// degradedContextPreview is the amount of assembled context echoed back
	// when no provider is configured.
	degradedContextPreview = 500
	// degradedConfidence is the fixed confidence of a degraded answer.
	degradedConfidence = 0.5
)

const degradedNotice = "I cannot provide a complete answer as the AI service is not configured."

// generateAnswer produces a grounded, citation-bearing answer from the
// selected context. The second return value reports the degraded path: when
// no provider is configured the answer is a labeled context preview and the
// caller must use the fixed degraded confidence. A provider failure after
// context assembly wraps ErrGeneration.
func (e *engine) generateAnswer(ctx context.Context, query string, chunks []ContextChunk) (string, bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	contextString := buildContextString(chunks)
	userPrompt := buildUserPrompt(contextString, query)

	answer, err := e.completer.Complete(ctx, systemPrompt, userPrompt, llm.CompletionParams{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if errors.Is(err, llm.ErrUnavailable) {
		logger.WarnContext(ctx, "llm provider unavailable, returning partial answer")
		return degradedAnswer(contextString), true, nil
	}
	if err != nil {
		logger.ErrorContext(ctx, "answer generation failed", "error", err)
		return "", false, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return strings.TrimSpace(answer), false, nil
}

// degradedAnswer builds the defined fallback answer from a context preview.
func degradedAnswer(contextString string) string {
	preview := contextString
	if len(preview) > degradedContextPreview {
		preview = preview[:degradedContextPreview]
	}
	return fmt.Sprintf("Based on the available context:\n\n%s...\n\n%s", preview, degradedNotice)
}
