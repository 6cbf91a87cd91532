package rag

import "testing"

func TestFilterChunks(t *testing.T) {
	tests := []struct {
		name         string
		chunks       []ContextChunk
		filterParams map[string]any
		minScore     float64
		wantIDs      []string
	}{
		{
			name: "keeps chunks above threshold",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "relevant content here", RelevanceScore: 0.8},
				{SourceID: "b", Content: "more relevant content", RelevanceScore: 0.5},
			},
			minScore: 0.1,
			wantIDs:  []string{"a", "b"},
		},
		{
			name: "drops chunks below threshold",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "relevant content here", RelevanceScore: 0.8},
				{SourceID: "b", Content: "barely related content", RelevanceScore: 0.05},
			},
			minScore: 0.1,
			wantIDs:  []string{"a"},
		},
		{
			name: "drops short content",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "short", RelevanceScore: 0.9},
				{SourceID: "b", Content: "   padded   ", RelevanceScore: 0.9},
				{SourceID: "c", Content: "long enough content", RelevanceScore: 0.9},
			},
			minScore: 0.1,
			wantIDs:  []string{"c"},
		},
		{
			name: "drops noise prefixes case-insensitively",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "ERROR: something went wrong here", RelevanceScore: 0.9},
				{SourceID: "b", Content: "Warning: deprecated field used", RelevanceScore: 0.9},
				{SourceID: "c", Content: "debug output from the run", RelevanceScore: 0.9},
				{SourceID: "d", Content: "the contract terms are clear", RelevanceScore: 0.9},
			},
			minScore: 0.1,
			wantIDs:  []string{"d"},
		},
		{
			name: "min_score param overrides configured threshold",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "relevant content here", RelevanceScore: 0.8},
				{SourceID: "b", Content: "weaker but valid content", RelevanceScore: 0.3},
			},
			filterParams: map[string]any{"min_score": 0.5},
			minScore:     0.1,
			wantIDs:      []string{"a"},
		},
		{
			name: "file_type filter requires metadata equality",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "pdf sourced content", RelevanceScore: 0.8, Metadata: map[string]any{"file_type": "pdf"}},
				{SourceID: "b", Content: "text sourced content", RelevanceScore: 0.8, Metadata: map[string]any{"file_type": "txt"}},
				{SourceID: "c", Content: "untagged content here", RelevanceScore: 0.8},
			},
			filterParams: map[string]any{"file_type": "pdf"},
			minScore:     0.1,
			wantIDs:      []string{"a"},
		},
		{
			name: "order preserved",
			chunks: []ContextChunk{
				{SourceID: "z", Content: "first positioned chunk", RelevanceScore: 0.3},
				{SourceID: "y", Content: "second positioned chunk", RelevanceScore: 0.9},
				{SourceID: "x", Content: "third positioned chunk", RelevanceScore: 0.6},
			},
			minScore: 0.1,
			wantIDs:  []string{"z", "y", "x"},
		},
		{
			name:     "empty input yields empty output",
			chunks:   nil,
			minScore: 0.1,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterChunks(tt.chunks, tt.filterParams, tt.minScore)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("filterChunks() returned %d chunks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].SourceID != id {
					t.Errorf("filterChunks()[%d].SourceID = %q, want %q", i, got[i].SourceID, id)
				}
			}
		})
	}
}
