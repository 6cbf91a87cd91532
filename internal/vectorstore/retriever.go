package vectorstore

import (
	"context"
	"fmt"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
)

// contentKey is the payload field carrying the chunk text.
const contentKey = "content"

// EmbeddingRetriever implements Retriever by embedding the query text and
// running a nearest-neighbor search against a VectorStore collection.
type EmbeddingRetriever struct {
	embedder   *llm.EmbeddingsClient
	store      VectorStore
	collection string
}

// NewEmbeddingRetriever creates a retriever over the given collection.
func NewEmbeddingRetriever(embedder *llm.EmbeddingsClient, store VectorStore, collection string) *EmbeddingRetriever {
	return &EmbeddingRetriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// Search embeds the query and returns up to topK candidate chunks.
// The store's cosine similarity s is reported as distance 1-s, so callers
// that compute relevance as max(0, 1-distance) recover the similarity.
func (r *EmbeddingRetriever) Search(ctx context.Context, query string, topK int) ([]RetrievedChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := r.store.Search(ctx, r.collection, embeddings[0], topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	chunks := make([]RetrievedChunk, 0, len(results))
	for _, result := range results {
		content, _ := result.Meta[contentKey].(string)
		if content == "" {
			logger.WarnContext(ctx, "search hit without content payload, skipping", "point_id", result.PointID)
			continue
		}

		// Copy metadata without the content payload field.
		meta := make(map[string]any, len(result.Meta))
		for k, v := range result.Meta {
			if k == contentKey {
				continue
			}
			meta[k] = v
		}

		distance := 1 - float64(result.Score)
		if distance < 0 {
			distance = 0
		}

		chunks = append(chunks, RetrievedChunk{
			SourceID: result.PointID,
			Content:  content,
			Meta:     meta,
			Distance: distance,
		})
	}

	logger.InfoContext(ctx, "retrieval completed", "collection", r.collection, "top_k", topK, "candidates", len(chunks))
	return chunks, nil
}
