package rag

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert AI assistant that provides accurate, well-reasoned answers based on the provided context.

Guidelines:
1. Answer based ONLY on the provided context
2. If information is insufficient, clearly state this limitation
3. Cite specific sources when making claims
4. Provide structured, clear responses
5. Acknowledge uncertainty when appropriate
6. Distinguish between facts and inferences`

const queryPromptTemplate = `Context Information:
%s

Question: %s

Instructions:
- Provide a comprehensive answer based on the context above
- Include specific citations using [Source: document_id] format
- If the context doesn't contain sufficient information, state this clearly
- Structure your response logically with clear reasoning

Answer:`

// sourceDivider visually separates chunks in the assembled context.
var sourceDivider = "\n" + strings.Repeat("=", 50) + "\n"

// buildContextString formats the selected chunks for the generation prompt.
// Each chunk gets a numbered source header carrying its citation ID and,
// when the metadata provides one, a human-readable source label.
func buildContextString(chunks []ContextChunk) string {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		sourceInfo := fmt.Sprintf("Source %d (ID: %s)", i+1, chunk.SourceID)
		if label, ok := chunk.Metadata["source"].(string); ok && label != "" {
			sourceInfo += " - " + label
		}
		parts = append(parts, fmt.Sprintf("%s:\n%s", sourceInfo, chunk.Content))
	}
	return strings.Join(parts, sourceDivider)
}

// buildUserPrompt combines the context string and the question into the
// fixed instructional template.
func buildUserPrompt(contextString, question string) string {
	return fmt.Sprintf(queryPromptTemplate, contextString, question)
}
