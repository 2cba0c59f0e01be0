package flat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure Factory implements the interface.
var _ driven.VectorIndexFactory = (*Factory)(nil)

// ManifestFile is the manifest file name inside an artifact.
const ManifestFile = "manifest.toml"

// formatVersion is bumped when the artifact layout changes.
const formatVersion = 1

// manifestFile is the on-disk form of domain.IndexManifest.
type manifestFile struct {
	Format         int       `toml:"format"`
	BuildID        string    `toml:"build_id"`
	EmbeddingModel string    `toml:"embedding_model"`
	Dimensions     int       `toml:"dimensions"`
	Count          int       `toml:"count"`
	ChunkSize      int       `toml:"chunk_size"`
	ChunkOverlap   int       `toml:"chunk_overlap"`
	CreatedAt      time.Time `toml:"created_at"`
}

// Factory builds and loads flat indexes.
type Factory struct{}

// NewFactory creates a flat index factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Build constructs an index from entries.
func (f *Factory) Build(entries []domain.IndexEntry, manifest domain.IndexManifest) (driven.VectorIndex, error) {
	return newIndex(entries, manifest)
}

// Inspect reads the manifest of the artifact at path.
func (f *Factory) Inspect(path string) (*domain.IndexManifest, error) {
	data, err := os.ReadFile(filepath.Join(path, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", domain.ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("%w: read manifest: %w", domain.ErrIndexNotFound, err)
	}

	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %w", domain.ErrIndexNotFound, err)
	}
	if mf.Format != formatVersion {
		return nil, fmt.Errorf("%w: unsupported artifact format %d", domain.ErrIndexNotFound, mf.Format)
	}

	return &domain.IndexManifest{
		BuildID:        mf.BuildID,
		EmbeddingModel: mf.EmbeddingModel,
		Dimensions:     mf.Dimensions,
		Count:          mf.Count,
		ChunkSize:      mf.ChunkSize,
		ChunkOverlap:   mf.ChunkOverlap,
		CreatedAt:      mf.CreatedAt,
	}, nil
}

// Load reads the artifact at path fully into memory without modifying it.
// Any missing or inconsistent part yields domain.ErrIndexNotFound.
func (f *Factory) Load(ctx context.Context, path string) (driven.VectorIndex, error) {
	manifest, err := f.Inspect(path)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open chunks: %w", domain.ErrIndexNotFound, err)
	}
	defer store.Close()

	entries, err := store.LoadEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexNotFound, err)
	}
	if len(entries) != manifest.Count {
		return nil, fmt.Errorf("%w: manifest lists %d entries, found %d",
			domain.ErrIndexNotFound, manifest.Count, len(entries))
	}

	idx, err := newIndex(entries, *manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexNotFound, err)
	}
	if len(entries) > 0 && idx.Dimensions() != manifest.Dimensions {
		return nil, fmt.Errorf("%w: manifest lists %d dimensions, vectors have %d",
			domain.ErrIndexNotFound, manifest.Dimensions, idx.Dimensions())
	}

	logger.Debug("loaded index %s: %d entries, %d dimensions", manifest.BuildID, idx.Len(), idx.Dimensions())
	return idx, nil
}

// Save writes the artifact to path, replacing whatever was there.
func (idx *Index) Save(ctx context.Context, path string) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0700); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp := filepath.Join(parent, "."+filepath.Base(path)+".tmp-"+uuid.NewString()[:8])
	if err := idx.writeArtifact(ctx, tmp); err != nil {
		os.RemoveAll(tmp)
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("remove previous index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("move index into place: %w", err)
	}

	logger.Debug("saved index %s to %s", idx.manifest.BuildID, path)
	return nil
}

func (idx *Index) writeArtifact(ctx context.Context, dir string) error {
	store, err := sqlite.Open(dir)
	if err != nil {
		return fmt.Errorf("create chunk store: %w", err)
	}
	if err := store.SaveEntries(ctx, idx.entries); err != nil {
		store.Close()
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close chunk store: %w", err)
	}

	m := idx.manifest
	data, err := toml.Marshal(manifestFile{
		Format:         formatVersion,
		BuildID:        m.BuildID,
		EmbeddingModel: m.EmbeddingModel,
		Dimensions:     m.Dimensions,
		Count:          m.Count,
		ChunkSize:      m.ChunkSize,
		ChunkOverlap:   m.ChunkOverlap,
		CreatedAt:      m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), data, 0600)
}
