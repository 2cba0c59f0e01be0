// Package ai creates embedding and LLM adapters from settings and wires
// them, with the vector index and prompts, into a Runtime.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// configureHint tells the user how to fix missing provider settings.
const configureHint = "run 'samvidhan settings api-key' or set the provider's API key environment variable"

// CreateEmbeddingService creates the embedding adapter selected by settings.
// timeout bounds each request; zero uses the adapter default.
func CreateEmbeddingService(
	ctx context.Context,
	settings *domain.EmbeddingSettings,
	timeout time.Duration,
) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no embedding settings", domain.ErrAINotConfigured)
	}
	if settings.Provider == domain.AIProviderAnthropic {
		return nil, fmt.Errorf("%w: anthropic does not provide embeddings, use gemini, openai or ollama",
			domain.ErrAINotConfigured)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider %q is not configured, %s",
			domain.ErrAINotConfigured, settings.Provider, configureHint)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider %q", domain.ErrAINotConfigured, settings.Provider)
	}
}

// CreateLLMService creates the LLM adapter selected by settings.
// timeout bounds each request; zero uses the adapter default.
func CreateLLMService(
	ctx context.Context,
	settings *domain.LLMSettings,
	timeout time.Duration,
) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no LLM settings", domain.ErrAINotConfigured)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: LLM provider %q is not configured, %s",
			domain.ErrAINotConfigured, settings.Provider, configureHint)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", domain.ErrAINotConfigured, settings.Provider)
	}
}

// ValidateEmbeddingConfig creates an embedding service and pings it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	svc, err := CreateEmbeddingService(ctx, settings, pingTimeout)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.Ping(ctx)
}

// ValidateLLMConfig creates an LLM service and pings it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	svc, err := CreateLLMService(ctx, settings, pingTimeout)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.Ping(ctx)
}
