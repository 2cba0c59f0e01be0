// Package flat provides an exact, brute-force vector index.
//
// Every query is scored against every stored vector by cosine similarity.
// For a corpus the size of a single constitution (a few thousand chunks)
// this is fast enough and returns exact neighbours.
//
// # Artifact layout
//
// An index is persisted as a directory:
//
//	<path>/manifest.toml   build metadata (see domain.IndexManifest)
//	<path>/chunks.db       chunk text, provenance and vectors (SQLite)
//
// Save writes to a sibling temporary directory and renames it into place,
// so a reader never observes a half-written artifact.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an immutable in-memory index. It is safe for concurrent readers.
type Index struct {
	entries  []domain.IndexEntry
	norms    []float64
	manifest domain.IndexManifest
}

// newIndex validates entries and precomputes vector norms.
func newIndex(entries []domain.IndexEntry, manifest domain.IndexManifest) (*Index, error) {
	dims := 0
	if len(entries) > 0 {
		dims = len(entries[0].Vector)
	}

	norms := make([]float64, len(entries))
	for i, e := range entries {
		if len(e.Vector) != dims {
			return nil, fmt.Errorf("%w: entry %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(e.Vector), dims)
		}
		norms[i] = norm(e.Vector)
	}

	manifest.Dimensions = dims
	manifest.Count = len(entries)
	if manifest.BuildID == "" {
		manifest.BuildID = uuid.NewString()
	}
	if manifest.CreatedAt.IsZero() {
		manifest.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	return &Index{entries: entries, norms: norms, manifest: manifest}, nil
}

// Search returns the k entries most similar to query, best first.
// Equal scores keep insertion order.
func (idx *Index) Search(ctx context.Context, query []float32, k int) (domain.RetrievalResult, error) {
	if k <= 0 || len(idx.entries) == 0 {
		return domain.RetrievalResult{}, nil
	}
	if len(query) != idx.manifest.Dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), idx.manifest.Dimensions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryNorm := norm(query)
	hits := make(domain.RetrievalResult, len(idx.entries))
	for i, e := range idx.entries {
		hits[i] = domain.ScoredChunk{
			Chunk: e.Chunk,
			Score: cosine(query, e.Vector, queryNorm, idx.norms[i]),
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Dimensions returns the vector length.
func (idx *Index) Dimensions() int {
	return idx.manifest.Dimensions
}

// Manifest describes the index.
func (idx *Index) Manifest() domain.IndexManifest {
	return idx.manifest
}

// Close releases the entries.
func (idx *Index) Close() error {
	idx.entries = nil
	idx.norms = nil
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 when either vector has zero length.
func cosine(a, b []float32, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}
