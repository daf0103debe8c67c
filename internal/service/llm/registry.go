package llm

import (
	"fmt"
	"log/slog"
	"sync"

	"inkwell/internal/config"
	"inkwell/internal/domain/services"
	"inkwell/internal/service/llm/providers/anthropic"
	"inkwell/internal/service/llm/providers/lorem"
)

// ProviderRegistry manages LLM providers and routes requests by provider
// name. Provider instances are created lazily and cached.
type ProviderRegistry struct {
	cfg   *config.Config
	cache map[string]services.LLMProvider
	mu    sync.RWMutex
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry(cfg *config.Config) *ProviderRegistry {
	return &ProviderRegistry{
		cfg:   cfg,
		cache: make(map[string]services.LLMProvider),
	}
}

// GetProvider returns the provider for the given name, creating and
// caching it on first use.
func (r *ProviderRegistry) GetProvider(provider string) (services.LLMProvider, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	// Fast path: check cache with read lock
	r.mu.RLock()
	if cached, exists := r.cache[provider]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check cache after acquiring write lock
	if cached, exists := r.cache[provider]; exists {
		return cached, nil
	}

	created, err := r.create(provider)
	if err != nil {
		return nil, err
	}

	r.cache[provider] = created
	return created, nil
}

func (r *ProviderRegistry) create(provider string) (services.LLMProvider, error) {
	switch provider {
	case "anthropic":
		return anthropic.NewProvider(r.cfg.AnthropicAPIKey)
	case "lorem":
		return lorem.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider '%s'", provider)
	}
}

// SetupProviders validates provider configuration at startup and logs
// what is available.
func SetupProviders(cfg *config.Config, logger *slog.Logger) (*ProviderRegistry, error) {
	registry := NewProviderRegistry(cfg)

	if cfg.LLMProvider == "anthropic" && cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set but LLM_PROVIDER is anthropic")
	}

	// Fail fast on a misconfigured default provider
	if _, err := registry.GetProvider(cfg.LLMProvider); err != nil {
		return nil, fmt.Errorf("default provider setup failed: %w", err)
	}

	logger.Info("provider registry initialized",
		"default_provider", cfg.LLMProvider,
		"default_model", cfg.LLMModel,
	)

	return registry, nil
}
