package rag

import (
	"strings"
	"testing"
)

func TestBuildContextString(t *testing.T) {
	chunks := []ContextChunk{
		{SourceID: "doc-1", Content: "First chunk body."},
		{SourceID: "doc-2", Content: "Second chunk body.", Metadata: map[string]any{"source": "handbook.pdf"}},
	}

	got := buildContextString(chunks)

	if !strings.Contains(got, "Source 1 (ID: doc-1):\nFirst chunk body.") {
		t.Errorf("context string missing first chunk header:\n%s", got)
	}
	if !strings.Contains(got, "Source 2 (ID: doc-2) - handbook.pdf:\nSecond chunk body.") {
		t.Errorf("context string missing labeled second chunk header:\n%s", got)
	}
	if !strings.Contains(got, strings.Repeat("=", 50)) {
		t.Errorf("context string missing source divider:\n%s", got)
	}
}

func TestBuildContextStringEmpty(t *testing.T) {
	if got := buildContextString(nil); got != "" {
		t.Errorf("buildContextString(nil) = %q, want empty", got)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt("CONTEXT BLOCK", "What are the payment terms?")

	if !strings.Contains(got, "CONTEXT BLOCK") {
		t.Error("user prompt missing context block")
	}
	if !strings.Contains(got, "Question: What are the payment terms?") {
		t.Error("user prompt missing question")
	}
	if !strings.Contains(got, "[Source: document_id]") {
		t.Error("user prompt missing citation format instruction")
	}
}

func TestDegradedAnswer(t *testing.T) {
	longContext := strings.Repeat("c", 600)
	got := degradedAnswer(longContext)

	if !strings.HasPrefix(got, "Based on the available context:") {
		t.Errorf("degraded answer missing preamble: %q", got)
	}
	if !strings.Contains(got, degradedNotice) {
		t.Errorf("degraded answer missing notice: %q", got)
	}
	if strings.Contains(got, strings.Repeat("c", 501)) {
		t.Error("degraded answer context preview not truncated to 500 characters")
	}
}
