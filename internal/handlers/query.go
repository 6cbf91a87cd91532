package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"docqa/internal/rag"
	"docqa/internal/service"
)

// QueryHandler handles HTTP requests for document questions.
type QueryHandler struct {
	queryService service.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queryService service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// ServeHTTP handles POST /api/v1/query.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req rag.QueryRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.queryService.ProcessQuery(ctx, req)
	if err != nil {
		h.handleQueryError(w, r, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// handleQueryError maps pipeline errors to HTTP status codes. Retrieval
// failures are 503 (the knowledge base is unavailable), generation failures
// are 502 (the upstream LLM failed).
func (h *QueryHandler) handleQueryError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := getLogger(ctx)
	logger.ErrorContext(ctx, "query request failed", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, rag.ErrRetrieval) {
		writeError(ctx, w, http.StatusServiceUnavailable, "Knowledge base unavailable")
		return
	}
	if errors.Is(err, rag.ErrGeneration) {
		writeError(ctx, w, http.StatusBadGateway, "Answer generation failed")
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(ctx, w, http.StatusBadRequest, "Invalid input")
		return
	}

	writeError(ctx, w, http.StatusInternalServerError, "Failed to process query")
}
