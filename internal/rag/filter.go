package rag

import "strings"

// minContentLength is the cleaned-content length below which a chunk is
// treated as boilerplate or noise.
const minContentLength = 10

// noiseMarkers are prefixes of log/debug output that sometimes leaks into
// indexed documents. Chunks starting with one are dropped outright.
var noiseMarkers = []string{"error", "warning", "debug"}

// filterChunks removes chunks unlikely to help answer the query, before
// re-ranking budget is spent on them. Rules apply in order: content quality,
// metadata equality (file_type), then score threshold. A min_score filter
// param overrides the configured minimum. Order is preserved, and an empty
// result is a valid outcome, not an error.
func filterChunks(chunks []ContextChunk, filterParams map[string]any, minScore float64) []ContextChunk {
	if override, ok := filterFloat(filterParams, "min_score"); ok {
		minScore = override
	}
	fileType, hasFileType := filterString(filterParams, "file_type")

	filtered := make([]ContextChunk, 0, len(chunks))
	for _, chunk := range chunks {
		cleaned := strings.TrimSpace(chunk.Content)
		if len(cleaned) < minContentLength {
			continue
		}
		if hasNoisePrefix(cleaned) {
			continue
		}
		if hasFileType {
			chunkType, _ := chunk.Metadata["file_type"].(string)
			if chunkType != fileType {
				continue
			}
		}
		if chunk.RelevanceScore < minScore {
			continue
		}
		filtered = append(filtered, chunk)
	}
	return filtered
}

func hasNoisePrefix(content string) bool {
	lowered := strings.ToLower(content)
	for _, marker := range noiseMarkers {
		if strings.HasPrefix(lowered, marker) {
			return true
		}
	}
	return false
}

func filterString(params map[string]any, key string) (string, bool) {
	if params == nil {
		return "", false
	}
	value, ok := params[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func filterFloat(params map[string]any, key string) (float64, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
