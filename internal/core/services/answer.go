package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerConfig holds the query policy.
type AnswerConfig struct {
	// TopK is how many chunks ground each answer. Zero uses domain.DefaultTopK.
	TopK int

	// Timeout bounds each remote call. Zero means no extra bound.
	Timeout time.Duration
}

// AnswerService composes a retriever with a generative model.
type AnswerService struct {
	retriever driving.Retriever
	llm       driven.LLMService
	prompts   driven.PromptStore
	cfg       AnswerConfig
}

// NewAnswerService creates an answer service.
func NewAnswerService(
	retriever driving.Retriever,
	llm driven.LLMService,
	prompts driven.PromptStore,
	cfg AnswerConfig,
) *AnswerService {
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	return &AnswerService{
		retriever: retriever,
		llm:       llm,
		prompts:   prompts,
		cfg:       cfg,
	}
}

// Answer retrieves context for the question and generates a grounded answer.
// A blank question fails before any remote call.
func (s *AnswerService) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	logger.Section("Answer")
	defer logger.Timed("answer")()

	rctx, cancel := withTimeout(ctx, s.cfg.Timeout)
	result, err := s.retriever.Retrieve(rctx, question, s.cfg.TopK)
	cancel()
	if err != nil {
		return nil, asServiceError(err, domain.ErrEmbeddingService)
	}

	tmpl, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return nil, fmt.Errorf("load answer prompt: %w", err)
	}
	prompt := fmt.Sprintf(tmpl, question, strings.Join(result.Texts(), "\n\n"))

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Question:  question,
		Text:      text,
		Citations: result.Citations(),
	}, nil
}

// Respond wraps Answer for callers that need a value, never an error.
func (s *AnswerService) Respond(ctx context.Context, question string) (resp domain.AnswerResponse) {
	resp.Question = question
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("answer panicked: %v", r)
			resp.Answer = nil
			resp.Failure = domain.NewFailure(fmt.Errorf("internal error: %v", r), domain.AnswerFailureMessage)
		}
	}()

	answer, err := s.Answer(ctx, question)
	if err != nil {
		logger.Warn("answer failed: %v", err)
		resp.Failure = domain.NewFailure(err, domain.AnswerFailureMessage)
		return resp
	}
	resp.Answer = answer
	return resp
}

// generate makes the single model call. Blank output is a failure.
func (s *AnswerService) generate(ctx context.Context, prompt string) (string, error) {
	gctx, cancel := withTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.llm.Generate(gctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", asServiceError(err, domain.ErrGenerationService)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text", domain.ErrGenerationService)
	}
	return text, nil
}

// withTimeout bounds ctx when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// asServiceError tags deadline and cancellation errors with the service
// sentinel so callers see "service unavailable" rather than a bare timeout.
func asServiceError(err, sentinel error) error {
	if domain.IsServiceError(err) || domain.IsInputError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
