package services

import "context"

// GenerateRequest is a single completion call to an LLM provider.
type GenerateRequest struct {
	Model       string
	System      string
	UserContent string
	Temperature float64
	MaxTokens   int
}

// LLMProvider generates text completions. Implementations return the
// first completion's text; an empty completion is an error, never an
// empty string.
type LLMProvider interface {
	// Name returns the provider name used for registry routing.
	Name() string

	// Generate performs one completion call.
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}
