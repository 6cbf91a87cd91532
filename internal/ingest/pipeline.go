// Package ingest registers pre-chunked documents: it embeds chunk text,
// writes the vectors to the vector index, and records the document in the
// registry. Parsing and chunking happen upstream; this package receives
// chunk text ready to embed.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docqa/internal/contextutil"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// contentKey is the payload key carrying chunk text in the vector index.
const contentKey = "content"

// Chunk is one pre-chunked piece of document text to index.
type Chunk struct {
	Content  string
	Metadata map[string]any
}

// DocumentInput describes a document registration request.
type DocumentInput struct {
	Filename string
	FileType string
	FileSize int64
	Metadata map[string]any
	Chunks   []Chunk
}

// Embedder turns chunk texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline indexes documents and keeps the registry consistent with the
// vector index.
type Pipeline struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	documents  storage.DocumentStore
	collection string
}

// NewPipeline creates an ingest pipeline writing to the given collection.
func NewPipeline(embedder Embedder, store vectorstore.VectorStore, documents storage.DocumentStore, collection string) *Pipeline {
	return &Pipeline{
		embedder:   embedder,
		store:      store,
		documents:  documents,
		collection: collection,
	}
}

// Register embeds and indexes the document's chunks, then records the
// document. The registry row is created up front in the processing state so
// a failed indexing run remains visible with its error.
func (p *Pipeline) Register(ctx context.Context, input DocumentInput) (*storage.Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(input.Chunks) == 0 {
		return nil, fmt.Errorf("document has no chunks")
	}

	chunkIDs := make([]string, len(input.Chunks))
	for i := range input.Chunks {
		chunkIDs[i] = uuid.New().String()
	}

	doc := &storage.Document{
		ID:          uuid.New().String(),
		Filename:    input.Filename,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		TotalChunks: len(input.Chunks),
		ChunkIDs:    chunkIDs,
		Status:      storage.DocumentStatusProcessing,
		Metadata:    input.Metadata,
	}
	if err := p.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	if err := p.index(ctx, doc, input); err != nil {
		if markErr := p.documents.MarkProcessed(ctx, doc.ID, storage.DocumentStatusFailed, err.Error()); markErr != nil {
			logger.ErrorContext(ctx, "failed to mark document failed", "document_id", doc.ID, "error", markErr)
		}
		return nil, err
	}

	if err := p.documents.MarkProcessed(ctx, doc.ID, storage.DocumentStatusCompleted, ""); err != nil {
		return nil, fmt.Errorf("failed to mark document completed: %w", err)
	}
	doc.Status = storage.DocumentStatusCompleted

	logger.InfoContext(ctx, "document registered",
		"document_id", doc.ID,
		"filename", doc.Filename,
		"chunks", doc.TotalChunks,
	)
	return doc, nil
}

func (p *Pipeline) index(ctx context.Context, doc *storage.Document, input DocumentInput) error {
	texts := make([]string, len(input.Chunks))
	for i, chunk := range input.Chunks {
		texts[i] = chunk.Content
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	points := make([]vectorstore.Point, len(input.Chunks))
	for i, chunk := range input.Chunks {
		meta := make(map[string]any, len(chunk.Metadata)+3)
		for k, v := range chunk.Metadata {
			meta[k] = v
		}
		meta[contentKey] = chunk.Content
		meta["document_id"] = doc.ID
		meta["file_type"] = doc.FileType
		points[i] = vectorstore.Point{
			ID:   doc.ChunkIDs[i],
			Vec:  vectors[i],
			Meta: meta,
		}
	}

	if err := p.store.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to index chunks: %w", err)
	}
	return nil
}

// Remove deletes the document's vectors from the index and then its registry
// row. Returns storage.ErrNotFound for an unknown document.
func (p *Pipeline) Remove(ctx context.Context, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	doc, err := p.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if len(doc.ChunkIDs) > 0 {
		if err := p.store.Delete(ctx, p.collection, doc.ChunkIDs); err != nil {
			return fmt.Errorf("failed to delete vectors: %w", err)
		}
	}
	if err := p.documents.Delete(ctx, id); err != nil {
		return err
	}

	logger.InfoContext(ctx, "document removed", "document_id", id, "chunks", len(doc.ChunkIDs))
	return nil
}
