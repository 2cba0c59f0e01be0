package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/core/services"
	"github.com/custodia-labs/samvidhan-cli/internal/postprocessors/chunker"
)

// session is the set of services one command runs against.
// Services whose dependencies were not requested are nil.
type session struct {
	settings  *domain.AppSettings
	indexer   driving.IndexService
	answers   driving.AnswerService
	scenarios driving.ScenarioService
	close     func()
}

// Close releases the session's runtime.
func (s *session) Close() {
	if s.close != nil {
		s.close()
	}
}

// openSession builds services from current settings after applying any
// overrides. Tests replace it.
var openSession = func(ctx context.Context, needs ai.Needs, overrides ...func(*domain.AppSettings)) (*session, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(settings)
	}

	rt, err := ai.OpenRuntime(ctx, settings, promptStore, indexFactory, needs)
	if err != nil {
		return nil, err
	}

	s := &session{settings: settings, close: rt.Close}

	if rt.Embedding != nil {
		chunks := chunker.New(
			chunker.WithChunkSize(settings.Chunker.Size),
			chunker.WithOverlap(settings.Chunker.Overlap),
		)
		loader := filesystem.NewLoader(extractors, bulkLoader)
		s.indexer = services.NewIndexService(loader, chunks, rt.Embedding, indexFactory)
	}

	if rt.LLM != nil {
		s.scenarios = services.NewScenarioService(rt.LLM, rt.Prompts, services.ScenarioConfig{
			StrictErrors: settings.Scenario.StrictErrors,
			Timeout:      settings.Timeouts.Request,
		})

		if rt.Embedding != nil && rt.Index != nil {
			retriever := services.NewRetrieverService(rt.Embedding, rt.Index)
			s.answers = services.NewAnswerService(retriever, rt.LLM, rt.Prompts, services.AnswerConfig{
				TopK:    settings.Retrieval.TopK,
				Timeout: settings.Timeouts.Request,
			})
		}
	}

	return s, nil
}
