package driven

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// VectorIndex provides exact similarity search over a built index.
// A loaded index is immutable and safe for concurrent readers.
type VectorIndex interface {
	// Search returns the k nearest entries by cosine similarity.
	// Returns every entry when fewer than k exist, and an empty
	// result for an empty index or k <= 0.
	Search(ctx context.Context, query []float32, k int) (domain.RetrievalResult, error)

	// Save persists the index to the artifact directory at path,
	// replacing any previous artifact there.
	Save(ctx context.Context, path string) error

	// Len returns the number of entries.
	Len() int

	// Dimensions returns the vector length, or 0 for an empty index.
	Dimensions() int

	// Manifest describes the index.
	Manifest() domain.IndexManifest

	// Close releases resources.
	Close() error
}

// VectorIndexFactory constructs vector indexes.
type VectorIndexFactory interface {
	// Build constructs an index from scratch.
	// Returns domain.ErrDimensionMismatch when entries disagree on vector length.
	Build(entries []domain.IndexEntry, manifest domain.IndexManifest) (VectorIndex, error)

	// Load reads a persisted index.
	// Returns domain.ErrIndexNotFound when the artifact is absent or invalid.
	Load(ctx context.Context, path string) (VectorIndex, error)

	// Inspect reads only the artifact manifest.
	Inspect(path string) (*domain.IndexManifest, error)
}
