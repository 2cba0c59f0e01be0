package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// RetrieverService embeds a question and searches the loaded index.
type RetrieverService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetrieverService creates a retriever over a loaded index.
func NewRetrieverService(embedder driven.EmbeddingService, index driven.VectorIndex) *RetrieverService {
	return &RetrieverService{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve returns the k chunks closest to the question.
func (s *RetrieverService) Retrieve(ctx context.Context, question string, k int) (domain.RetrievalResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if k <= 0 || s.index.Len() == 0 {
		return domain.RetrievalResult{}, nil
	}

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingService) {
			err = fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
		}
		return nil, err
	}

	result, err := s.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("retrieved %d chunks for %q", len(result), question)
	return result, nil
}
