// Package http assembles the chi router and HTTP middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/handlers"
	"docqa/internal/ingest"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	QueryService service.QueryService
	Pipeline     *ingest.Pipeline
	Documents    storage.DocumentStore
	QueryLogs    storage.QueryLogStore
	VectorStore  handlers.CollectionChecker
	Collection   string
	// LLMConfigured reports whether a real LLM provider is wired.
	LLMConfigured bool
	RAGConfig     rag.Config
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(RequestLogger)

	queryHandler := handlers.NewQueryHandler(deps.QueryService)
	documentsHandler := handlers.NewDocumentsHandler(deps.Pipeline, deps.Documents)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection, deps.LLMConfigured)
	configHandler := handlers.NewConfigHandler(deps.RAGConfig)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.QueryLogs)
	queryPageHandler := handlers.NewQueryLogPageHandler(deps.QueryLogs)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/query", queryHandler)
			r.Method(http.MethodGet, "/config", configHandler)
			r.Method(http.MethodGet, "/analytics", analyticsHandler)

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", documentsHandler.Register)
				r.Get("/", documentsHandler.List)
				r.Get("/{id}", documentsHandler.Get)
				r.Delete("/{id}", documentsHandler.Delete)
			})
		})
	})

	// Human-readable review page for a logged query.
	r.Get("/queries/{id}", queryPageHandler.ServeHTTP)

	return r
}
