package ai

import (
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations by pinging them.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding validates an embedding configuration.
func (v *ConfigValidator) ValidateEmbedding(settings *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(settings)
}

// ValidateLLM validates an LLM configuration.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	return ValidateLLMConfig(settings)
}
