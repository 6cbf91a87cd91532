package rag

import "testing"

func TestEnsureDiversity(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []ContextChunk
		threshold float64
		wantIDs   []string
	}{
		{
			name: "drops near-duplicate",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "the quarterly revenue grew by ten percent"},
				{SourceID: "b", Content: "the quarterly revenue grew by ten percent overall"},
				{SourceID: "c", Content: "employee headcount remained flat this year"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a", "c"},
		},
		{
			name: "keeps distinct chunks",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "the contract covers licensing terms"},
				{SourceID: "b", Content: "payment schedules follow net thirty days"},
				{SourceID: "c", Content: "termination requires ninety days notice"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a", "b", "c"},
		},
		{
			name: "first chunk always kept",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "identical evidence text here"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a"},
		},
		{
			name: "tiny word sets never compared",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "yes sir"},
				{SourceID: "b", Content: "yes sir"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a", "b"},
		},
		{
			name: "overlap equal to threshold is kept",
			chunks: []ContextChunk{
				// Word sets {a b c d e} and {a b c d f}: overlap 4/6 = 0.667,
				// below the 0.7 threshold.
				{SourceID: "a", Content: "alpha beta gamma delta epsilon"},
				{SourceID: "b", Content: "alpha beta gamma delta zeta"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a", "b"},
		},
		{
			name: "duplicate compared against all kept chunks",
			chunks: []ContextChunk{
				{SourceID: "a", Content: "vendor invoices are paid monthly by finance"},
				{SourceID: "b", Content: "security reviews happen before each release"},
				{SourceID: "c", Content: "security reviews happen before each release cycle"},
			},
			threshold: 0.7,
			wantIDs:   []string{"a", "b"},
		},
		{
			name:      "empty input",
			chunks:    nil,
			threshold: 0.7,
			wantIDs:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ensureDiversity(tt.chunks, tt.threshold)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ensureDiversity() returned %d chunks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].SourceID != id {
					t.Errorf("ensureDiversity()[%d].SourceID = %q, want %q", i, got[i].SourceID, id)
				}
			}
		})
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "one two three", b: "one two three", want: 1.0},
		{name: "disjoint", a: "one two three", b: "four five six", want: 0.0},
		{name: "partial", a: "one two three four", b: "three four five six", want: 1.0 / 3.0},
		{name: "empty side", a: "", b: "one two", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlapRatio(wordSet(tt.a), wordSet(tt.b))
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("overlapRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}
