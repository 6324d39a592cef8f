// Package llm abstracts the external text-generation providers.
package llm

import (
	"context"
	"errors"
)

// ErrRateLimited marks a provider rejection due to rate limiting. Callers
// surface it as a retry-later message; there are no automatic retries.
var ErrRateLimited = errors.New("generation service rate limited")

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   TokenUsage
}

// TextGenerator is an interface for generating text from a prompt. The system
// instruction and sampling parameters are fixed at client construction.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing provider resources.
type Closer interface {
	Close() error
}
