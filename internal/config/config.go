package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// LLM provider settings. An empty OpenAIAPIKey selects degraded mode:
	// the service still retrieves context but cannot generate full answers.
	OpenAIAPIKey   string
	LLMModel       string
	RerankModel    string
	LLMMaxTokens   int
	LLMTemperature float64

	// Retrieval pipeline tunables.
	MaxContextTokens   int
	TopKRetrieval      int
	FinalContextChunks int
	MinRelevanceScore  float64
	RerankCandidates   int
	DiversityThreshold float64

	// Embedding service (OpenAI-compatible /v1/embeddings endpoint).
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string

	// External stores.
	DBPath           string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4"),
		RerankModel:      getEnv("RERANK_MODEL", "gpt-3.5-turbo"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", os.Getenv("OPENAI_API_KEY")),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		DBPath:           getEnv("DB_PATH", "./data/docqa.db"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "documents"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	cfg.LLMMaxTokens, err = getEnvInt("LLM_MAX_TOKENS", 500)
	if err != nil {
		return nil, err
	}
	cfg.LLMTemperature, err = getEnvFloat("LLM_TEMPERATURE", 0.3)
	if err != nil {
		return nil, err
	}
	cfg.MaxContextTokens, err = getEnvInt("MAX_CONTEXT_TOKENS", 4000)
	if err != nil {
		return nil, err
	}
	cfg.TopKRetrieval, err = getEnvInt("TOP_K_RETRIEVAL", 10)
	if err != nil {
		return nil, err
	}
	cfg.FinalContextChunks, err = getEnvInt("FINAL_CONTEXT_CHUNKS", 5)
	if err != nil {
		return nil, err
	}
	cfg.MinRelevanceScore, err = getEnvFloat("MIN_RELEVANCE_SCORE", 0.1)
	if err != nil {
		return nil, err
	}
	cfg.RerankCandidates, err = getEnvInt("RERANK_CANDIDATES", 5)
	if err != nil {
		return nil, err
	}
	cfg.DiversityThreshold, err = getEnvFloat("DIVERSITY_THRESHOLD", 0.7)
	if err != nil {
		return nil, err
	}

	// Parse QDRANT_VECTOR_SIZE
	// Note: This must match the output vector size of the embeddings model.
	// If the vector size changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	// Validate pipeline bounds
	if cfg.MinRelevanceScore < 0 || cfg.MinRelevanceScore > 1 {
		return nil, fmt.Errorf("MIN_RELEVANCE_SCORE must be in [0,1]")
	}
	if cfg.DiversityThreshold < 0 || cfg.DiversityThreshold > 1 {
		return nil, fmt.Errorf("DIVERSITY_THRESHOLD must be in [0,1]")
	}
	if cfg.TopKRetrieval <= 0 || cfg.FinalContextChunks <= 0 || cfg.MaxContextTokens <= 0 {
		return nil, fmt.Errorf("TOP_K_RETRIEVAL, FINAL_CONTEXT_CHUNKS and MAX_CONTEXT_TOKENS must be positive")
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	// Create ./data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

// getEnvFloat gets a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return parsed, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", level)
	}
}
