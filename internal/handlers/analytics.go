package handlers

import (
	"net/http"

	"docqa/internal/storage"
)

// AnalyticsHandler serves query log aggregates.
type AnalyticsHandler struct {
	queryLogs storage.QueryLogStore
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(queryLogs storage.QueryLogStore) *AnalyticsHandler {
	return &AnalyticsHandler{queryLogs: queryLogs}
}

// ServeHTTP handles GET /api/v1/analytics.
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	analytics, err := h.queryLogs.Analytics(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to aggregate query logs", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	writeJSON(ctx, w, http.StatusOK, analytics)
}
