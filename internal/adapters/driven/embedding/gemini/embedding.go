// Package gemini provides an embedding service adapter for Google Gemini
// embedding models.
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/googleai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel   = "models/embedding-001"
	DefaultTimeout = domain.DefaultRequestTimeout

	// maxBatch is the API limit on contents per embedding call.
	maxBatch = 100
)

// Task types tell the model how the vector will be used.
const (
	taskDocument = "RETRIEVAL_DOCUMENT"
	taskQuery    = "RETRIEVAL_QUERY"
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model is the embedding model to use.
	Model string

	// Timeout bounds each request.
	Timeout time.Duration
}

// EmbeddingService generates embeddings with the Gemini API.
// Embed is meant for queries and EmbedBatch for documents.
type EmbeddingService struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	dimensions int
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
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

	model := googleai.ModelPath(cfg.Model)
	return &EmbeddingService{
		client:     client,
		model:      model,
		timeout:    cfg.Timeout,
		dimensions: domain.EmbeddingDimensions()[model],
	}, nil
}

// Embed generates a query embedding for text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.embed(ctx, []string{text}, taskQuery)
	if err != nil {
		return nil, err
	}

	s.learnDimensions(vectors[0])
	return vectors[0], nil
}

// EmbedBatch generates document embeddings for texts, in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		batch, err := s.embed(ctx, texts[start:end], taskDocument)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	if len(vectors) > 0 {
		s.learnDimensions(vectors[0])
	}
	return vectors, nil
}

func (s *EmbeddingService) embed(ctx context.Context, texts []string, task string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	resp, err := s.client.Models.EmbedContent(ctx, s.model, contents, &genai.EmbedContentConfig{TaskType: task})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, googleai.Classify(err))
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: gemini returned %d embeddings for %d inputs",
			domain.ErrEmbeddingService, len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("%w: gemini returned no embedding for input %d", domain.ErrEmbeddingService, i)
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}

func (s *EmbeddingService) learnDimensions(v []float32) {
	if s.dimensions == 0 {
		s.dimensions = len(v)
	}
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks the key and model by fetching the model metadata.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingService, googleai.Classify(err))
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
