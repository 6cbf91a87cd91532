package rag

import "strings"

// adequateAnswerLength is the answer length, in characters, at which the
// length factor reaches full credit.
const adequateAnswerLength = 200

// uncertaintyPhrases each cost 0.2 of the certainty factor per occurrence.
var uncertaintyPhrases = []string{
	"i don't know",
	"unclear",
	"insufficient information",
	"not enough",
}

// scoreConfidence combines four independent signals into one [0,1] trust
// value: average context relevance, answer-length adequacy, absence of
// uncertainty language, and citation presence. The result is their mean.
func scoreConfidence(answer string, contextUsed []ContextChunk) float64 {
	factors := make([]float64, 0, 4)

	// Factor 1: average relevance of the context actually used.
	avgRelevance := 0.0
	if len(contextUsed) > 0 {
		for _, chunk := range contextUsed {
			avgRelevance += chunk.RelevanceScore
		}
		avgRelevance /= float64(len(contextUsed))
	}
	factors = append(factors, avgRelevance)

	// Factor 2: answer length adequacy.
	lengthScore := float64(len(answer)) / adequateAnswerLength
	if lengthScore > 1.0 {
		lengthScore = 1.0
	}
	factors = append(factors, lengthScore)

	// Factor 3: uncertainty language.
	lowered := strings.ToLower(answer)
	certainty := 1.0
	for _, phrase := range uncertaintyPhrases {
		certainty -= 0.2 * float64(strings.Count(lowered, phrase))
	}
	if certainty < 0 {
		certainty = 0
	}
	factors = append(factors, certainty)

	// Factor 4: citation presence.
	citation := 0.6
	if strings.Contains(answer, "[Source:") || strings.Contains(lowered, "source") {
		citation = 1.0
	}
	factors = append(factors, citation)

	if len(factors) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	return sum / float64(len(factors))
}
