package driving

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// IndexService builds the persisted vector index offline.
type IndexService interface {
	// BuildIndex runs load, chunk, embed, build and save, returning the
	// number of chunks indexed. A fatal failure is a *domain.StageError.
	BuildIndex(ctx context.Context, sourceDir, outputPath string) (int, error)

	// Inspect returns the manifest of the artifact at path.
	Inspect(path string) (*domain.IndexManifest, error)
}
