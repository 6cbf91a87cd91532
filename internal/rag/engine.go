// Package rag implements the retrieval-augmented generation pipeline:
// candidate retrieval from the vector index, relevance filtering, diversity
// selection, LLM re-ranking, token-budgeted context assembly, grounded answer
// generation and confidence scoring. Each query is an independent unit of
// work; the engine holds no mutable state, so concurrent queries need no
// locking.
package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks docqa/internal/rag Engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/vectorstore"
)

// insufficientAnswer is the fixed answer for the no-context outcome.
const insufficientAnswer = "I don't have enough information in the knowledge base to answer this question."

const (
	defaultMaxResults = 5
	maxMaxResults     = 20
	// sourcePreviewLength caps the content preview in citation records.
	sourcePreviewLength = 200
)

// Engine answers natural-language queries against the indexed documents.
type Engine interface {
	// Query runs the full pipeline for one request.
	Query(ctx context.Context, req QueryRequest) (Response, error)
}

type engine struct {
	retriever vectorstore.Retriever
	completer llm.Completer
	cfg       Config
	logger    *slog.Logger
}

// NewEngine creates a RAG engine. The completer may be the null provider;
// queries then take the defined degraded path instead of failing.
func NewEngine(retriever vectorstore.Retriever, completer llm.Completer, cfg Config) Engine {
	return &engine{
		retriever: retriever,
		completer: completer,
		cfg:       cfg,
		logger:    slog.Default(),
	}
}

// Query runs retrieval, filtering, diversity selection, re-ranking, context
// budgeting, generation and confidence scoring for one request.
func (e *engine) Query(ctx context.Context, req QueryRequest) (Response, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}

	logger.InfoContext(ctx, "query started",
		"query_length", len(req.Query),
		"max_results", maxResults,
		"has_filters", len(req.FilterParams) > 0,
	)

	contextChunks, err := e.retrieveContext(ctx, req.Query, req.FilterParams)
	if err != nil {
		return Response{}, err
	}

	if len(contextChunks) == 0 {
		logger.InfoContext(ctx, "no relevant context found")
		return Response{
			Query:           req.Query,
			Answer:          insufficientAnswer,
			Sources:         []Source{},
			ContextUsed:     []ContextChunk{},
			ConfidenceScore: 0.0,
			ProcessingTime:  time.Since(start).Seconds(),
			Timestamp:       time.Now(),
		}, nil
	}

	if len(contextChunks) > maxResults {
		contextChunks = contextChunks[:maxResults]
	}

	answer, degraded, err := e.generateAnswer(ctx, req.Query, contextChunks)
	if err != nil {
		return Response{}, err
	}

	confidence := degradedConfidence
	if !degraded {
		confidence = scoreConfidence(answer, contextChunks)
	}

	sources := make([]Source, 0, len(contextChunks))
	for _, chunk := range contextChunks {
		preview := chunk.Content
		if len(preview) > sourcePreviewLength {
			preview = preview[:sourcePreviewLength] + "..."
		}
		sources = append(sources, Source{
			ID:             chunk.SourceID,
			ContentPreview: preview,
			Metadata:       chunk.Metadata,
			RelevanceScore: chunk.RelevanceScore,
		})
	}

	contextUsed := []ContextChunk{}
	if req.IncludeMetadata {
		contextUsed = contextChunks
	}

	elapsed := time.Since(start).Seconds()
	logger.InfoContext(ctx, "query completed",
		"chunks_used", len(contextChunks),
		"confidence", confidence,
		"degraded", degraded,
		"processing_time", elapsed,
	)

	return Response{
		Query:           req.Query,
		Answer:          answer,
		Sources:         sources,
		ContextUsed:     contextUsed,
		ConfidenceScore: confidence,
		ProcessingTime:  elapsed,
		Timestamp:       time.Now(),
	}, nil
}

// retrieveContext runs the retrieval stages: semantic search, relevance
// filtering, diversity selection, re-ranking and context budgeting. Retrieval
// failures wrap ErrRetrieval; an empty result is a valid outcome.
func (e *engine) retrieveContext(ctx context.Context, query string, filterParams map[string]any) ([]ContextChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	results, err := e.retriever.Search(ctx, query, e.cfg.TopKRetrieval)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	candidates := make([]ContextChunk, 0, len(results))
	for _, result := range results {
		relevance := 1 - result.Distance
		if relevance < 0 {
			relevance = 0
		}
		if relevance < e.cfg.MinRelevanceScore {
			continue
		}
		candidates = append(candidates, ContextChunk{
			Content:         result.Content,
			SourceID:        result.SourceID,
			Metadata:        result.Meta,
			RelevanceScore:  relevance,
			RetrievalMethod: RetrievalMethodSemantic,
		})
	}

	filtered := filterChunks(candidates, filterParams, e.cfg.MinRelevanceScore)
	diverse := ensureDiversity(filtered, e.cfg.DiversityThreshold)
	reranked := e.rerankChunks(ctx, query, diverse)
	selected := selectContext(reranked, e.cfg.MaxContextTokens, e.cfg.FinalContextChunks)

	logger.InfoContext(ctx, "context retrieval completed",
		"retrieved", len(results),
		"above_threshold", len(candidates),
		"after_filter", len(filtered),
		"after_diversity", len(diverse),
		"selected", len(selected),
	)
	return selected, nil
}
