package rag

const (
	// charsPerToken is the approximation used for token counting.
	charsPerToken = 4
	// chunkTokenOverhead accounts for the source header and divider that
	// wrap each chunk in the assembled prompt.
	chunkTokenOverhead = 50
	// truncationMarker is appended to a chunk cut to fit remaining budget.
	truncationMarker = "..."
)

// approxTokens estimates the token count of a text.
func approxTokens(text string) int {
	return len(text) / charsPerToken
}

// selectContext picks chunks, in relevance order, until either the token
// budget or the chunk cap is reached. Both limits must hold for a full chunk
// to be accepted. When a chunk would overflow the budget and some budget
// remains, its content is truncated to exactly fit and selection stops;
// a cap-limited rejection stops selection without truncation.
func selectContext(chunks []ContextChunk, maxTokens, maxChunks int) []ContextChunk {
	selected := make([]ContextChunk, 0, maxChunks)
	total := 0

	for _, chunk := range chunks {
		cost := approxTokens(chunk.Content) + chunkTokenOverhead

		if total+cost <= maxTokens && len(selected) < maxChunks {
			selected = append(selected, chunk)
			total += cost
			continue
		}

		if len(selected) >= maxChunks {
			break
		}

		// Budget overflow: fit a truncated version if any budget remains.
		remaining := maxTokens - total
		if remaining > 0 {
			limit := remaining * charsPerToken
			if limit < len(chunk.Content) {
				chunk.Content = chunk.Content[:limit] + truncationMarker
			}
			selected = append(selected, chunk)
		}
		break
	}

	return selected
}
