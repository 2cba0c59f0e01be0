// Package gemini provides an LLM service adapter for Google Gemini models.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/googleai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = domain.DefaultRequestTimeout
)

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model is the generative model to use.
	Model string

	// Timeout bounds each request.
	Timeout time.Duration
}

// LLMService generates text with the Gemini API.
type LLMService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := googleai.NewClient(ctx, googleai.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	if err != nil {
		return nil, err
	}

	return &LLMService{
		client:  client,
		model:   googleai.ModelPath(cfg.Model),
		timeout: cfg.Timeout,
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate. A blocked prompt is reported as an error.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	var config *genai.GenerateContentConfig
	if opts.MaxTokens > 0 || len(opts.StopWords) > 0 {
		config = &genai.GenerateContentConfig{
			MaxOutputTokens: int32(opts.MaxTokens),
			StopSequences:   opts.StopWords,
		}
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationService, googleai.Classify(err))
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: gemini blocked the prompt: %s", domain.ErrGenerationService, string(resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no candidates", domain.ErrGenerationService)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks the key and model by fetching the model metadata.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGenerationService, googleai.Classify(err))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
