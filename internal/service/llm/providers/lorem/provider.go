package lorem

import (
	"context"
	"strings"

	loremgen "github.com/bozaro/golorem"

	"inkwell/internal/domain/services"
)

// Provider is a mock LLM provider that generates lorem ipsum text.
// Used for development and tests without requiring real API keys.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// Generate produces two short lorem paragraphs regardless of the
// prompt. Respects context cancellation so it behaves like a real call.
func (p *Provider) Generate(ctx context.Context, req *services.GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	paragraphs := []string{
		p.generator.Sentence(5, 12) + " " + p.generator.Sentence(4, 10),
		p.generator.Sentence(6, 14),
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
