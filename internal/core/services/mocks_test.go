package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// keywordEmbedder maps text to counts of a fixed vocabulary, giving
// deterministic vectors whose cosine tracks shared keywords.
type keywordEmbedder struct {
	mu         sync.Mutex
	vocab      []string
	embedErr   error
	batchErr   error
	dropOne    bool
	embedCalls int
	batchCalls int
}

func newKeywordEmbedder(vocab ...string) *keywordEmbedder {
	return &keywordEmbedder{vocab: vocab}
}

func (m *keywordEmbedder) vector(text string) []float32 {
	text = strings.ToLower(text)
	v := make([]float32, len(m.vocab)+1)
	for i, word := range m.vocab {
		v[i] = float32(strings.Count(text, word))
	}
	v[len(m.vocab)] = 0.01
	return v
}

func (m *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	if m.dropOne && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *keywordEmbedder) Dimensions() int              { return len(m.vocab) + 1 }
func (m *keywordEmbedder) ModelName() string            { return "keyword-test" }
func (m *keywordEmbedder) Ping(_ context.Context) error { return nil }
func (m *keywordEmbedder) Close() error                 { return nil }

// mockLLM records prompts and returns a canned response.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	panicMsg string
	calls    int
	prompts  []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPrompts serves fixed templates.
type mockPrompts struct {
	templates map[string]string
}

func newMockPrompts() *mockPrompts {
	return &mockPrompts{templates: map[string]string{
		driven.PromptAnswer:   "QUESTION: %s\nCONTEXT:\n%s",
		driven.PromptScenario: "SCENARIO: %s",
	}}
}

func (m *mockPrompts) Load(name string) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return tmpl, nil
}

func (m *mockPrompts) Reload() {}

// mockRetriever returns a fixed result and counts calls.
type mockRetriever struct {
	result domain.RetrievalResult
	err    error
	calls  int
	lastK  int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, k int) (domain.RetrievalResult, error) {
	m.calls++
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockVectorIndex is a fixed in-memory driven.VectorIndex.
type mockVectorIndex struct {
	result    domain.RetrievalResult
	searchErr error
	size      int
	saved     string
	saveErr   error
	manifest  domain.IndexManifest
	lastQuery []float32
}

func (m *mockVectorIndex) Search(_ context.Context, query []float32, k int) (domain.RetrievalResult, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k < len(m.result) {
		return m.result[:k], nil
	}
	return m.result, nil
}

func (m *mockVectorIndex) Save(_ context.Context, path string) error {
	m.saved = path
	return m.saveErr
}

func (m *mockVectorIndex) Len() int                       { return m.size }
func (m *mockVectorIndex) Dimensions() int                { return m.manifest.Dimensions }
func (m *mockVectorIndex) Manifest() domain.IndexManifest { return m.manifest }
func (m *mockVectorIndex) Close() error                   { return nil }

// mockLoader returns fixed pages.
type mockLoader struct {
	pages []domain.Page
	err   error
}

func (m *mockLoader) Load(_ context.Context, _ string) ([]domain.Page, error) {
	return m.pages, m.err
}

// mockIndexFactory captures the entries handed to Build.
type mockIndexFactory struct {
	index    *mockVectorIndex
	buildErr error
	entries  []domain.IndexEntry
	manifest domain.IndexManifest
}

func (m *mockIndexFactory) Build(entries []domain.IndexEntry, manifest domain.IndexManifest) (driven.VectorIndex, error) {
	m.entries = entries
	m.manifest = manifest
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	m.index.size = len(entries)
	m.index.manifest = manifest
	return m.index, nil
}

func (m *mockIndexFactory) Load(_ context.Context, _ string) (driven.VectorIndex, error) {
	return m.index, nil
}

func (m *mockIndexFactory) Inspect(_ string) (*domain.IndexManifest, error) {
	manifest := m.index.manifest
	return &manifest, nil
}
