package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

// setRequiredEnv sets the minimal environment a successful Load needs and
// points the database at a temp directory so tests leave no files behind.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.LLMModel != "gpt-4" {
		t.Errorf("LLMModel = %q, want gpt-4", cfg.LLMModel)
	}
	if cfg.RerankModel != "gpt-3.5-turbo" {
		t.Errorf("RerankModel = %q, want gpt-3.5-turbo", cfg.RerankModel)
	}
	if cfg.LLMMaxTokens != 500 {
		t.Errorf("LLMMaxTokens = %d, want 500", cfg.LLMMaxTokens)
	}
	if cfg.LLMTemperature != 0.3 {
		t.Errorf("LLMTemperature = %v, want 0.3", cfg.LLMTemperature)
	}
	if cfg.MaxContextTokens != 4000 {
		t.Errorf("MaxContextTokens = %d, want 4000", cfg.MaxContextTokens)
	}
	if cfg.TopKRetrieval != 10 {
		t.Errorf("TopKRetrieval = %d, want 10", cfg.TopKRetrieval)
	}
	if cfg.FinalContextChunks != 5 {
		t.Errorf("FinalContextChunks = %d, want 5", cfg.FinalContextChunks)
	}
	if cfg.MinRelevanceScore != 0.1 {
		t.Errorf("MinRelevanceScore = %v, want 0.1", cfg.MinRelevanceScore)
	}
	if cfg.RerankCandidates != 5 {
		t.Errorf("RerankCandidates = %d, want 5", cfg.RerankCandidates)
	}
	if cfg.DiversityThreshold != 0.7 {
		t.Errorf("DiversityThreshold = %v, want 0.7", cfg.DiversityThreshold)
	}
	if cfg.QdrantCollection != "documents" {
		t.Errorf("QdrantCollection = %q, want documents", cfg.QdrantCollection)
	}
	if cfg.QdrantVectorSize != 768 {
		t.Errorf("QdrantVectorSize = %d, want 768", cfg.QdrantVectorSize)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("TOP_K_RETRIEVAL", "20")
	t.Setenv("MIN_RELEVANCE_SCORE", "0.25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.LLMModel != "gpt-4o-mini" {
		t.Errorf("LLMModel = %q, want gpt-4o-mini", cfg.LLMModel)
	}
	if cfg.TopKRetrieval != 20 {
		t.Errorf("TopKRetrieval = %d, want 20", cfg.TopKRetrieval)
	}
	if cfg.MinRelevanceScore != 0.25 {
		t.Errorf("MinRelevanceScore = %v, want 0.25", cfg.MinRelevanceScore)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": ""},
		},
		{
			name: "non-numeric vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": "lots"},
		},
		{
			name: "zero vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": "0"},
		},
		{
			name: "relevance score out of range",
			env:  map[string]string{"MIN_RELEVANCE_SCORE": "1.5"},
		},
		{
			name: "diversity threshold out of range",
			env:  map[string]string{"DIVERSITY_THRESHOLD": "-0.2"},
		},
		{
			name: "non-positive top k",
			env:  map[string]string{"TOP_K_RETRIEVAL": "0"},
		},
		{
			name: "invalid max tokens",
			env:  map[string]string{"LLM_MAX_TOKENS": "many"},
		},
		{
			name: "invalid log level",
			env:  map[string]string{"LOG_LEVEL": "verbose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}
