package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Needs selects which parts of the Runtime a command requires.
type Needs struct {
	Embedding bool
	LLM       bool
	Index     bool
}

// Runtime holds the process-wide services built from settings.
// Fields not requested through Needs are nil.
type Runtime struct {
	Settings  *domain.AppSettings
	Embedding driven.EmbeddingService
	LLM       driven.LLMService
	Index     driven.VectorIndex
	Prompts   driven.PromptStore
}

// Service constructors used by OpenRuntime.
var (
	newEmbeddingService = CreateEmbeddingService
	newLLMService       = CreateLLMService
)

// OpenRuntime creates the requested services and loads the index.
// A missing or invalid index fails with domain.ErrIndexNotFound so the
// query path refuses to start without one. On error everything already
// opened is closed.
func OpenRuntime(
	ctx context.Context,
	settings *domain.AppSettings,
	prompts driven.PromptStore,
	indexes driven.VectorIndexFactory,
	needs Needs,
) (*Runtime, error) {
	if settings == nil {
		return nil, errors.New("settings required")
	}

	rt := &Runtime{Settings: settings, Prompts: prompts}
	if err := rt.open(ctx, indexes, needs); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (r *Runtime) open(ctx context.Context, indexes driven.VectorIndexFactory, needs Needs) error {
	settings := r.Settings
	timeout := settings.Timeouts.Request

	if needs.Embedding {
		svc, err := newEmbeddingService(ctx, &settings.Embedding, timeout)
		if err != nil {
			return fmt.Errorf("embedding service: %w", err)
		}
		r.Embedding = NewThrottledEmbedding(svc, settings.Embedding.BatchSize, settings.Embedding.RequestsPerSecond)
	}

	if needs.LLM {
		llm, err := newLLMService(ctx, &settings.LLM, timeout)
		if err != nil {
			return fmt.Errorf("LLM service: %w", err)
		}
		r.LLM = llm
	}

	if needs.Index {
		if indexes == nil {
			return errors.New("index factory required")
		}
		idx, err := indexes.Load(ctx, settings.Index.Path)
		if err != nil {
			return err
		}
		r.Index = idx

		manifest := idx.Manifest()
		if r.Embedding != nil && manifest.EmbeddingModel != "" && manifest.EmbeddingModel != r.Embedding.ModelName() {
			logger.Warn("index was built with %q but queries embed with %q, results may be poor",
				manifest.EmbeddingModel, r.Embedding.ModelName())
		}
		logger.Info("loaded index %s: %d chunks, %d dimensions", manifest.BuildID, manifest.Count, manifest.Dimensions)
	}

	return nil
}

// Close releases all services. It is safe to call on a partly built Runtime.
func (r *Runtime) Close() {
	if r == nil {
		return
	}
	if r.Index != nil {
		if err := r.Index.Close(); err != nil {
			logger.Warn("close index: %v", err)
		}
	}
	if r.LLM != nil {
		if err := r.LLM.Close(); err != nil {
			logger.Warn("close LLM service: %v", err)
		}
	}
	if r.Embedding != nil {
		if err := r.Embedding.Close(); err != nil {
			logger.Warn("close embedding service: %v", err)
		}
	}
}
