package rag

import "errors"

var (
	// ErrRetrieval marks vector-store failures. Fatal for the query;
	// the transport layer maps it to a service-unavailable response.
	ErrRetrieval = errors.New("context retrieval failed")
	// ErrGeneration marks LLM failures after context assembly succeeded,
	// so callers can distinguish "nothing found" from "found but could not
	// answer".
	ErrGeneration = errors.New("answer generation failed")
)
