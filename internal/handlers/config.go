package handlers

import (
	"net/http"

	"docqa/internal/rag"
)

// ConfigHandler serves the active pipeline tunables, read-only. Secrets and
// connection strings are not exposed.
type ConfigHandler struct {
	cfg rag.Config
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg rag.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// ConfigResponse represents the running pipeline configuration.
type ConfigResponse struct {
	Model              string  `json:"model"`
	RerankModel        string  `json:"rerank_model"`
	MaxTokens          int     `json:"max_tokens"`
	Temperature        float64 `json:"temperature"`
	MaxContextTokens   int     `json:"max_context_tokens"`
	TopKRetrieval      int     `json:"top_k_retrieval"`
	FinalContextChunks int     `json:"final_context_chunks"`
	MinRelevanceScore  float64 `json:"min_relevance_score"`
	RerankCandidates   int     `json:"rerank_candidates"`
	DiversityThreshold float64 `json:"diversity_threshold"`
}

// ServeHTTP handles GET /api/v1/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, ConfigResponse{
		Model:              h.cfg.Model,
		RerankModel:        h.cfg.RerankModel,
		MaxTokens:          h.cfg.MaxTokens,
		Temperature:        h.cfg.Temperature,
		MaxContextTokens:   h.cfg.MaxContextTokens,
		TopKRetrieval:      h.cfg.TopKRetrieval,
		FinalContextChunks: h.cfg.FinalContextChunks,
		MinRelevanceScore:  h.cfg.MinRelevanceScore,
		RerankCandidates:   h.cfg.RerankCandidates,
		DiversityThreshold: h.cfg.DiversityThreshold,
	})
}
