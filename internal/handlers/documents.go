package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docqa/internal/ingest"
	"docqa/internal/storage"
)

// DocumentsHandler handles HTTP requests for the document registry.
type DocumentsHandler struct {
	pipeline  *ingest.Pipeline
	documents storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(pipeline *ingest.Pipeline, documents storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{
		pipeline:  pipeline,
		documents: documents,
	}
}

// DocumentChunk is one pre-chunked piece of text in a registration request.
type DocumentChunk struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RegisterDocumentRequest represents the HTTP payload for registering a
// document. Chunking happens upstream; the request carries chunk text ready
// to embed.
type RegisterDocumentRequest struct {
	Filename string          `json:"filename"`
	FileType string          `json:"file_type"`
	FileSize int64           `json:"file_size"`
	Metadata map[string]any  `json:"metadata,omitempty"`
	Chunks   []DocumentChunk `json:"chunks"`
}

// DocumentResponse represents a document registry record on the wire.
type DocumentResponse struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	FileType    string         `json:"file_type"`
	FileSize    int64          `json:"file_size"`
	TotalChunks int            `json:"total_chunks"`
	Status      string         `json:"status"`
	ErrorMsg    string         `json:"error_message,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

func toDocumentResponse(doc *storage.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:          doc.ID,
		Filename:    doc.Filename,
		FileType:    doc.FileType,
		FileSize:    doc.FileSize,
		TotalChunks: doc.TotalChunks,
		Status:      doc.Status,
		ErrorMsg:    doc.ErrorMsg,
		Metadata:    doc.Metadata,
		CreatedAt:   doc.CreatedAt,
	}
	if !doc.ProcessedAt.IsZero() {
		t := doc.ProcessedAt
		resp.ProcessedAt = &t
	}
	return resp
}

// Register handles POST /api/v1/documents.
func (h *DocumentsHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req RegisterDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Filename == "" {
		writeError(ctx, w, http.StatusBadRequest, "Validation error: filename cannot be empty")
		return
	}
	if len(req.Chunks) == 0 {
		writeError(ctx, w, http.StatusBadRequest, "Validation error: chunks cannot be empty")
		return
	}
	for _, chunk := range req.Chunks {
		if chunk.Content == "" {
			writeError(ctx, w, http.StatusBadRequest, "Validation error: chunk content cannot be empty")
			return
		}
	}

	chunks := make([]ingest.Chunk, len(req.Chunks))
	for i, chunk := range req.Chunks {
		chunks[i] = ingest.Chunk{Content: chunk.Content, Metadata: chunk.Metadata}
	}

	doc, err := h.pipeline.Register(ctx, ingest.DocumentInput{
		Filename: req.Filename,
		FileType: req.FileType,
		FileSize: req.FileSize,
		Metadata: req.Metadata,
		Chunks:   chunks,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to register document", "filename", req.Filename, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to register document")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toDocumentResponse(doc))
}

// List handles GET /api/v1/documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	docs, err := h.documents.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toDocumentResponse(doc))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/v1/documents/{id}.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	id := chi.URLParam(r, "id")
	doc, err := h.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Document not found")
			return
		}
		logger.ErrorContext(ctx, "failed to get document", "document_id", id, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /api/v1/documents/{id}. It removes the document's
// vectors from the index before the registry row.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	id := chi.URLParam(r, "id")
	if err := h.pipeline.Remove(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Document not found")
			return
		}
		logger.ErrorContext(ctx, "failed to delete document", "document_id", id, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
