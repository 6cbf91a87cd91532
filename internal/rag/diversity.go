package rag

import "strings"

// minDiversityWords is the word-set size below which two chunks are never
// treated as near-duplicates; tiny chunks overlap too easily for the ratio
// to mean anything.
const minDiversityWords = 3

// ensureDiversity greedily drops near-duplicate chunks so redundant evidence
// does not crowd out distinct evidence. The first (highest-relevance) chunk
// is always kept; each later candidate is compared against every kept chunk
// by word-set overlap and discarded when the ratio exceeds the threshold and
// both sets have at least minDiversityWords words. Iteration order is
// relevance order, ties broken by original position.
func ensureDiversity(chunks []ContextChunk, threshold float64) []ContextChunk {
	if len(chunks) <= 1 {
		return chunks
	}

	kept := []ContextChunk{chunks[0]}
	keptWords := []map[string]struct{}{wordSet(chunks[0].Content)}

	for _, candidate := range chunks[1:] {
		candidateWords := wordSet(candidate.Content)

		include := true
		for _, existing := range keptWords {
			if len(candidateWords) < minDiversityWords || len(existing) < minDiversityWords {
				continue
			}
			if overlapRatio(candidateWords, existing) > threshold {
				include = false
				break
			}
		}

		if include {
			kept = append(kept, candidate)
			keptWords = append(keptWords, candidateWords)
		}
	}

	return kept
}

// overlapRatio computes |intersection| / |union| of two word sets.
func overlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
