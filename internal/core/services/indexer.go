package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// ProbeText is embedded once before the batch run to fail fast on a
// misconfigured embedding service.
const ProbeText = "Constitution of India test"

// chunkerConfig is implemented by chunkers that can report their settings
// for the index manifest.
type chunkerConfig interface {
	ChunkSize() int
	Overlap() int
}

// IndexService builds the vector index offline: load, chunk, embed, build, save.
type IndexService struct {
	loader   driven.DocumentLoader
	chunker  driven.Chunker
	embedder driven.EmbeddingService
	indexes  driven.VectorIndexFactory
}

// NewIndexService creates a new index service.
func NewIndexService(
	loader driven.DocumentLoader,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	indexes driven.VectorIndexFactory,
) *IndexService {
	return &IndexService{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		indexes:  indexes,
	}
}

// BuildIndex runs every stage and overwrites the artifact at outputPath.
func (s *IndexService) BuildIndex(ctx context.Context, sourceDir, outputPath string) (int, error) {
	logger.Section("Index Build")
	defer logger.Timed("index build")()

	pages, err := s.loader.Load(ctx, sourceDir)
	if err != nil {
		return 0, &domain.StageError{Stage: domain.StageLoad, Err: err}
	}
	logger.Info("loaded %d pages from %s", len(pages), sourceDir)

	chunks, err := s.chunker.Process(ctx, pages)
	if err != nil {
		return 0, &domain.StageError{Stage: domain.StageChunk, Err: err}
	}
	logger.Info("split into %d chunks", len(chunks))

	vectors, err := s.embed(ctx, chunks)
	if err != nil {
		return 0, &domain.StageError{Stage: domain.StageEmbed, Err: err}
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		chunk.ID = i
		entries[i] = domain.IndexEntry{Vector: vectors[i], Chunk: chunk}
	}

	manifest := domain.IndexManifest{EmbeddingModel: s.embedder.ModelName()}
	if cfg, ok := s.chunker.(chunkerConfig); ok {
		manifest.ChunkSize = cfg.ChunkSize()
		manifest.ChunkOverlap = cfg.Overlap()
	}

	idx, err := s.indexes.Build(entries, manifest)
	if err != nil {
		return 0, &domain.StageError{Stage: domain.StageBuild, Err: err}
	}
	defer idx.Close()

	if err := idx.Save(ctx, outputPath); err != nil {
		return 0, &domain.StageError{Stage: domain.StageSave, Err: err}
	}

	logger.Info("saved index %s to %s", idx.Manifest().BuildID, outputPath)
	return idx.Len(), nil
}

// Inspect returns the manifest of the artifact at path.
func (s *IndexService) Inspect(path string) (*domain.IndexManifest, error) {
	return s.indexes.Inspect(path)
}

// embed probes the service, then embeds every chunk text in input order.
// Every returned vector has the probe's dimensionality.
func (s *IndexService) embed(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	defer logger.Timed("embed")()

	probe, err := s.embedder.Embed(ctx, ProbeText)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("%w: probe returned an empty vector", domain.ErrEmbeddingService)
	}
	logger.Debug("probe ok: %s returns %d dimensions", s.embedder.ModelName(), len(probe))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks",
			domain.ErrEmbeddingService, len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != len(probe) {
			return nil, fmt.Errorf("%w: chunk %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(v), len(probe))
		}
	}
	return vectors, nil
}
