package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure ScenarioService implements the interface.
var _ driving.ScenarioService = (*ScenarioService)(nil)

// ScenarioErrorPrefix starts the analysis text returned for a failed model
// call when strict errors are off.
const ScenarioErrorPrefix = "Error generating response: "

// ScenarioConfig configures scenario analysis.
type ScenarioConfig struct {
	// StrictErrors returns model failures as errors instead of analysis text.
	StrictErrors bool

	// Timeout bounds the model call. Zero means no extra bound.
	Timeout time.Duration
}

// ScenarioService analyses hypothetical scenarios with one model call and
// no retrieval.
type ScenarioService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	cfg     ScenarioConfig
}

// NewScenarioService creates a scenario service.
func NewScenarioService(llm driven.LLMService, prompts driven.PromptStore, cfg ScenarioConfig) *ScenarioService {
	return &ScenarioService{
		llm:     llm,
		prompts: prompts,
		cfg:     cfg,
	}
}

// Analyze returns the model's analysis of scenario.
//
// Unless StrictErrors is set, a failed model call yields
// "Error generating response: <err>" with a nil error.
func (s *ScenarioService) Analyze(ctx context.Context, scenario string) (string, error) {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return "", domain.ErrEmptyScenario
	}

	logger.Section("Scenario")
	defer logger.Timed("scenario")()

	tmpl, err := s.prompts.Load(driven.PromptScenario)
	if err != nil {
		return "", fmt.Errorf("load scenario prompt: %w", err)
	}

	gctx, cancel := withTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.llm.Generate(gctx, fmt.Sprintf(tmpl, scenario), driven.GenerateOptions{})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: model returned no text", domain.ErrGenerationService)
	}
	if err != nil {
		err = asServiceError(err, domain.ErrGenerationService)
		if s.cfg.StrictErrors {
			return "", err
		}
		logger.Warn("scenario generation failed: %v", err)
		return ScenarioErrorPrefix + err.Error(), nil
	}

	return text, nil
}

// Respond wraps Analyze for callers that need a value, never an error.
func (s *ScenarioService) Respond(ctx context.Context, scenario string) (resp domain.ScenarioResponse) {
	resp.Scenario = scenario
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("scenario panicked: %v", r)
			resp.Analysis = ""
			resp.Failure = domain.NewFailure(fmt.Errorf("internal error: %v", r), domain.ScenarioFailureMessage)
		}
	}()

	analysis, err := s.Analyze(ctx, scenario)
	if err != nil {
		logger.Warn("scenario failed: %v", err)
		resp.Failure = domain.NewFailure(err, domain.ScenarioFailureMessage)
		return resp
	}
	resp.Analysis = analysis
	return resp
}
