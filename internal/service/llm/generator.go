package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
)

// Generator implements the CommentGenerator interface on top of the
// provider registry. Sampling parameters are fixed; a single best-effort
// call is made per invocation.
type Generator struct {
	registry *ProviderRegistry
	cfg      *config.Config
	logger   *slog.Logger
}

// NewGenerator creates a comment generator routed through the registry.
func NewGenerator(registry *ProviderRegistry, cfg *config.Config, logger *slog.Logger) services.CommentGenerator {
	return &Generator{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// GenerateComment produces a root comment on the post in the persona's
// voice.
func (g *Generator) GenerateComment(ctx context.Context, persona *models.Persona, post *models.Post) (string, error) {
	return g.generate(ctx, RenderCommentPrompt(persona), RenderPostContent(post))
}

// GenerateReply produces the persona's reply to the last comment of the
// thread.
func (g *Generator) GenerateReply(ctx context.Context, persona *models.Persona, post *models.Post, thread []models.Comment) (string, error) {
	if len(thread) == 0 {
		return "", fmt.Errorf("reply generation requires a thread")
	}

	target := thread[len(thread)-1]
	return g.generate(ctx, RenderReplyPrompt(persona, post, thread), target.Content)
}

func (g *Generator) generate(ctx context.Context, systemPrompt, userContent string) (string, error) {
	provider, err := g.registry.GetProvider(g.cfg.LLMProvider)
	if err != nil {
		return "", err
	}

	text, err := provider.Generate(ctx, &services.GenerateRequest{
		Model:       g.cfg.LLMModel,
		System:      systemPrompt,
		UserContent: userContent,
		Temperature: config.GenerationTemperature,
		MaxTokens:   config.GenerationMaxTokens,
	})
	if err != nil {
		return "", err
	}

	// A blank completion is a failure, never an empty comment.
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrGenerationFailed
	}

	return text, nil
}
