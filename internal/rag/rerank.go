package rag

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
)

const (
	// rerankChunkPreview caps the chunk text sent in an evaluation prompt.
	rerankChunkPreview = 500
	rerankMaxTokens    = 100
	rerankTemperature  = 0.1
)

const rerankSystemPrompt = "You are a relevance evaluation expert."

const rerankPromptTemplate = `Evaluate the relevance of this document chunk to the query:
Query: %s
Chunk: %s

Rate relevance from 0.0 to 1.0 and provide a brief justification.
Response format: {"score": 0.0-1.0, "reason": "brief explanation"}`

var scorePattern = regexp.MustCompile(`\d+(\.\d+)?`)

// rerankChunks refines the ranking with per-chunk LLM judgments. Only the top
// RerankCandidates chunks are evaluated to bound cost; the rest keep their
// retrieval scores. A judged score is blended with the retrieval score, and
// any per-chunk failure (call error, unparsable reply, out-of-range value)
// leaves that chunk's original score in place — one bad evaluation never
// aborts the batch. If the provider is unavailable the whole pass reduces to
// a sort. The result is always sorted descending by score, stable for ties.
func (e *engine) rerankChunks(ctx context.Context, query string, chunks []ContextChunk) []ContextChunk {
	logger := contextutil.LoggerFromContext(ctx)

	reranked := make([]ContextChunk, len(chunks))
	copy(reranked, chunks)

	// Nothing to gain from spending evaluation calls when every candidate
	// already fits the final context.
	if len(reranked) > e.cfg.FinalContextChunks {
		candidates := e.cfg.RerankCandidates
		if candidates > len(reranked) {
			candidates = len(reranked)
		}

		for i := 0; i < candidates; i++ {
			prompt := fmt.Sprintf(rerankPromptTemplate, query, previewText(reranked[i].Content, rerankChunkPreview))

			reply, err := e.completer.Complete(ctx, rerankSystemPrompt, prompt, llm.CompletionParams{
				Model:       e.cfg.RerankModel,
				MaxTokens:   rerankMaxTokens,
				Temperature: rerankTemperature,
			})
			if errors.Is(err, llm.ErrUnavailable) {
				logger.DebugContext(ctx, "re-ranker unavailable, keeping retrieval scores")
				break
			}
			if err != nil {
				logger.WarnContext(ctx, "re-rank call failed, keeping original score",
					"source_id", reranked[i].SourceID, "error", err)
				continue
			}

			judged, err := parseRelevanceScore(reply)
			if err != nil {
				logger.WarnContext(ctx, "re-rank score unparsable, keeping original score",
					"source_id", reranked[i].SourceID, "error", err)
				continue
			}

			reranked[i].RelevanceScore = (reranked[i].RelevanceScore + judged) / 2
		}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].RelevanceScore > reranked[j].RelevanceScore
	})
	return reranked
}

// parseRelevanceScore extracts a judged relevance value from free-form LLM
// output. The first decimal-looking token is accepted; anything outside
// [0,1] is rejected so a stray "0-5" style rating cannot corrupt the score.
func parseRelevanceScore(reply string) (float64, error) {
	match := scorePattern.FindString(reply)
	if match == "" {
		return 0, fmt.Errorf("no numeric score in reply")
	}

	var score float64
	if _, err := fmt.Sscanf(match, "%f", &score); err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", match, err)
	}
	if score < 0 || score > 1 {
		return 0, fmt.Errorf("score %v out of range [0,1]", score)
	}
	return score, nil
}

// previewText truncates s to at most n bytes for prompt construction.
func previewText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
