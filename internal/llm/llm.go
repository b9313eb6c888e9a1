package llm

import (
	"context"
	"errors"
)

// GenerateInput captures a single text generation request.
type GenerateInput struct {
	Prompt string
	// Model overrides the client default when non-empty.
	Model string
	// APIKeyOverride replaces the configured key for this call only.
	APIKeyOverride string
}

// Client abstracts text generation providers.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("LLM provider is not configured")

// PlaceholderClient stands in when no provider credentials are configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, input GenerateInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
