package llm

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loremConfig() *config.Config {
	return &config.Config{
		LLMProvider: "lorem",
		LLMModel:    "lorem-fast",
	}
}

func TestProviderRegistry_GetProvider(t *testing.T) {
	registry := NewProviderRegistry(loremConfig())

	provider, err := registry.GetProvider("lorem")
	if err != nil {
		t.Fatalf("GetProvider failed: %v", err)
	}
	if provider.Name() != "lorem" {
		t.Errorf("provider name = %q", provider.Name())
	}

	// Cached: same instance on second fetch
	again, err := registry.GetProvider("lorem")
	if err != nil {
		t.Fatalf("second GetProvider failed: %v", err)
	}
	if provider != again {
		t.Error("provider not cached")
	}
}

func TestProviderRegistry_Errors(t *testing.T) {
	registry := NewProviderRegistry(loremConfig())

	if _, err := registry.GetProvider(""); err == nil {
		t.Error("empty provider name did not fail")
	}
	if _, err := registry.GetProvider("nonexistent"); err == nil {
		t.Error("unknown provider did not fail")
	}
}

func TestSetupProviders(t *testing.T) {
	if _, err := SetupProviders(loremConfig(), testLogger()); err != nil {
		t.Errorf("SetupProviders failed for lorem: %v", err)
	}

	// Anthropic without a key fails fast
	cfg := &config.Config{LLMProvider: "anthropic"}
	if _, err := SetupProviders(cfg, testLogger()); err == nil {
		t.Error("anthropic without API key did not fail")
	}
}

func TestGenerator_Lorem(t *testing.T) {
	registry, err := SetupProviders(loremConfig(), testLogger())
	if err != nil {
		t.Fatalf("SetupProviders failed: %v", err)
	}
	generator := NewGenerator(registry, loremConfig(), testLogger())

	persona := testPersona()
	post := &models.Post{ID: "p1", Title: "T", Body: "b"}

	comment, err := generator.GenerateComment(context.Background(), persona, post)
	if err != nil {
		t.Fatalf("GenerateComment failed: %v", err)
	}
	if strings.TrimSpace(comment) == "" {
		t.Error("generated comment is blank")
	}

	thread := []models.Comment{{
		ID:      "c1",
		PostID:  "p1",
		Author:  &models.CommentAuthor{Type: models.AuthorTypeUser, ID: "u1"},
		Content: "hi",
	}}
	reply, err := generator.GenerateReply(context.Background(), persona, post, thread)
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if strings.TrimSpace(reply) == "" {
		t.Error("generated reply is blank")
	}

	// An empty thread is a programming error
	if _, err := generator.GenerateReply(context.Background(), persona, post, nil); err == nil {
		t.Error("empty thread did not fail")
	}
}
