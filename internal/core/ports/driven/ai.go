package driven

import "github.com/custodia-labs/samvidhan-cli/internal/core/domain"

// AIConfigValidator checks provider settings by contacting the provider.
type AIConfigValidator interface {
	// ValidateEmbedding creates an embedding client and pings it.
	ValidateEmbedding(settings *domain.EmbeddingSettings) error

	// ValidateLLM creates an LLM client and pings it.
	ValidateLLM(settings *domain.LLMSettings) error
}
