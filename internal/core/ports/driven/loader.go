package driven

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// DocumentLoader reads the corpus directory into page records.
type DocumentLoader interface {
	// Load returns every non-blank page found under dir.
	// Returns domain.ErrDataSource when dir is missing and
	// domain.ErrNoDocuments when nothing could be extracted.
	Load(ctx context.Context, dir string) ([]domain.Page, error)
}
