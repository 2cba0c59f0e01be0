package driven

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// Chunker splits pages into bounded, overlapping chunks.
type Chunker interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the chunks of every page, in page order.
	// Returns domain.ErrEmptyCorpus when no chunk is produced.
	Process(ctx context.Context, pages []domain.Page) ([]domain.Chunk, error)
}
