package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docqa/internal/vectorstore VectorStore,Retriever

import "context"

// Point represents a vector point with metadata. Chunk text travels in the
// payload under the "content" key so retrieval needs no second lookup.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a raw similarity-search hit.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search returning up to k results.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}

// RetrievedChunk is one candidate chunk returned by a Retriever.
// Distance is a non-negative dissimilarity value; lower means more similar.
type RetrievedChunk struct {
	SourceID string
	Content  string
	Meta     map[string]any
	Distance float64
}

// Retriever performs semantic nearest-neighbor search by query text.
// This is the contract the RAG pipeline consumes.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]RetrievedChunk, error)
}
