package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docqa/internal/config"
	"docqa/internal/http"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	documentRepo := storage.NewDocumentRepo(db)
	queryLogRepo := storage.NewQueryLogRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	retriever := vectorstore.NewEmbeddingRetriever(embedder, vectorStore, cfg.QdrantCollection)

	// Select the LLM provider. Without an API key the service runs degraded:
	// retrieval still works, answers fall back to raw context.
	var completer llm.Completer
	llmConfigured := cfg.OpenAIAPIKey != ""
	if llmConfigured {
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
		completer = client
	} else {
		slog.Warn("No LLM API key configured, running in degraded mode")
		completer = llm.NewUnavailable()
	}

	ragConfig := rag.Config{
		MaxContextTokens:   cfg.MaxContextTokens,
		TopKRetrieval:      cfg.TopKRetrieval,
		FinalContextChunks: cfg.FinalContextChunks,
		MinRelevanceScore:  cfg.MinRelevanceScore,
		RerankCandidates:   cfg.RerankCandidates,
		DiversityThreshold: cfg.DiversityThreshold,
		MaxTokens:          cfg.LLMMaxTokens,
		Temperature:        cfg.LLMTemperature,
		Model:              cfg.LLMModel,
		RerankModel:        cfg.RerankModel,
	}
	ragEngine := rag.NewEngine(retriever, completer, ragConfig)
	slog.Info("RAG engine initialized", "model", cfg.LLMModel, "degraded", !llmConfigured)

	queryService := service.NewQueryService(ragEngine, queryLogRepo)
	pipeline := ingest.NewPipeline(embedder, vectorStore, documentRepo, cfg.QdrantCollection)

	deps := &http.Deps{
		QueryService:  queryService,
		Pipeline:      pipeline,
		Documents:     documentRepo,
		QueryLogs:     queryLogRepo,
		VectorStore:   vectorStore,
		Collection:    cfg.QdrantCollection,
		LLMConfigured: llmConfigured,
		RAGConfig:     ragConfig,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
