package ai

import (
	"context"
	"sync"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// mockEmbedding records batch sizes and replays queued errors.
type mockEmbedding struct {
	mu      sync.Mutex
	batches []int
	errs    []error
	model   string
	closed  bool
}

func (m *mockEmbedding) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batches = append(m.batches, len(texts))
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int              { return 2 }
func (m *mockEmbedding) ModelName() string            { return m.model }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error {
	m.closed = true
	return nil
}

// mockIndex is a fixed index returned by mockFactory.
type mockIndex struct {
	manifest domain.IndexManifest
	closed   bool
}

func (m *mockIndex) Search(_ context.Context, _ []float32, _ int) (domain.RetrievalResult, error) {
	return domain.RetrievalResult{}, nil
}
func (m *mockIndex) Save(_ context.Context, _ string) error { return nil }
func (m *mockIndex) Len() int                               { return m.manifest.Count }
func (m *mockIndex) Dimensions() int                        { return m.manifest.Dimensions }
func (m *mockIndex) Manifest() domain.IndexManifest         { return m.manifest }
func (m *mockIndex) Close() error {
	m.closed = true
	return nil
}

type mockFactory struct {
	index   *mockIndex
	loadErr error
	loaded  string
}

func (f *mockFactory) Build(_ []domain.IndexEntry, _ domain.IndexManifest) (driven.VectorIndex, error) {
	return f.index, nil
}

func (f *mockFactory) Load(_ context.Context, path string) (driven.VectorIndex, error) {
	f.loaded = path
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.index, nil
}

func (f *mockFactory) Inspect(_ string) (*domain.IndexManifest, error) {
	manifest := f.index.manifest
	return &manifest, nil
}
