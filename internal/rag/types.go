package rag

import "time"

// RetrievalMethodSemantic tags chunks found through embedding similarity
// search. Additional retrieval strategies get their own tag.
const RetrievalMethodSemantic = "semantic"

// ContextChunk is a unit of retrieved evidence flowing through the pipeline.
type ContextChunk struct {
	// Content is the text body of the chunk.
	Content string `json:"content"`
	// SourceID is the stable identifier of the originating chunk, used for citation.
	SourceID string `json:"source_id"`
	// Metadata carries arbitrary document attributes (e.g. file type, page).
	Metadata map[string]any `json:"metadata"`
	// RelevanceScore is in [0,1]. It starts similarity-derived and may be
	// replaced by an LLM judgment during re-ranking.
	RelevanceScore float64 `json:"relevance_score"`
	// RetrievalMethod tags how the chunk was found.
	RetrievalMethod string `json:"retrieval_method"`
}

// QueryRequest represents a RAG query.
type QueryRequest struct {
	// Query is the user's question.
	Query string `json:"query"`
	// MaxResults caps the returned sources (1-20, default 5).
	MaxResults int `json:"max_results,omitempty"`
	// IncludeMetadata requests the context chunks used in the response.
	IncludeMetadata bool `json:"include_metadata,omitempty"`
	// FilterParams holds optional retrieval filters such as "file_type"
	// (metadata equality) and "min_score" (relevance threshold override).
	FilterParams map[string]any `json:"filter_params,omitempty"`
}

// Source is one citation record in a response.
type Source struct {
	ID             string         `json:"id"`
	ContentPreview string         `json:"content_preview"`
	Metadata       map[string]any `json:"metadata"`
	RelevanceScore float64        `json:"relevance_score"`
}

// Response is the result of one query.
type Response struct {
	Query           string         `json:"query"`
	Answer          string         `json:"answer"`
	Sources         []Source       `json:"sources"`
	ContextUsed     []ContextChunk `json:"context_used"`
	ConfidenceScore float64        `json:"confidence_score"`
	// ProcessingTime is wall-clock seconds for the whole pipeline.
	ProcessingTime float64   `json:"processing_time"`
	Timestamp      time.Time `json:"timestamp"`
}

// Config holds the pipeline tunables. It is passed into the engine
// constructor; there is no ambient global configuration.
type Config struct {
	// MaxContextTokens is the approximate token budget for assembled context.
	MaxContextTokens int
	// TopKRetrieval is the retrieval fan-out before filtering.
	TopKRetrieval int
	// FinalContextChunks caps the number of chunks sent to the generator.
	FinalContextChunks int
	// MinRelevanceScore excludes weaker candidates before re-ranking.
	MinRelevanceScore float64
	// RerankCandidates bounds per-query LLM evaluation calls.
	RerankCandidates int
	// DiversityThreshold is the word-overlap ratio above which a candidate
	// is considered a near-duplicate of an already-kept chunk.
	DiversityThreshold float64
	// MaxTokens and Temperature are the generation parameters.
	MaxTokens   int
	Temperature float64
	// Model is the generation model; RerankModel is the cheaper model used
	// for per-chunk relevance evaluation.
	Model       string
	RerankModel string
}

// DefaultConfig returns the defaults the service ships with.
func DefaultConfig() Config {
	return Config{
		MaxContextTokens:   4000,
		TopKRetrieval:      10,
		FinalContextChunks: 5,
		MinRelevanceScore:  0.1,
		RerankCandidates:   5,
		DiversityThreshold: 0.7,
		MaxTokens:          500,
		Temperature:        0.3,
		Model:              "gpt-4",
		RerankModel:        "gpt-3.5-turbo",
	}
}
