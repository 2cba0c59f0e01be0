package mcp

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAnswerService) Answer(_ context.Context, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Respond(ctx context.Context, question string) domain.AnswerResponse {
	answer, err := m.Answer(ctx, question)
	if err != nil {
		return domain.AnswerResponse{Question: question, Failure: domain.NewFailure(err, domain.AnswerFailureMessage)}
	}
	return domain.AnswerResponse{Question: question, Answer: answer}
}

// mockScenarioService is a mock implementation of driving.ScenarioService.
type mockScenarioService struct {
	analysis string
	err      error
}

func (m *mockScenarioService) Analyze(_ context.Context, _ string) (string, error) {
	return m.analysis, m.err
}

func (m *mockScenarioService) Respond(ctx context.Context, scenario string) domain.ScenarioResponse {
	analysis, err := m.Analyze(ctx, scenario)
	if err != nil {
		return domain.ScenarioResponse{Scenario: scenario, Failure: domain.NewFailure(err, domain.ScenarioFailureMessage)}
	}
	return domain.ScenarioResponse{Scenario: scenario, Analysis: analysis}
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	manifest *domain.IndexManifest
	err      error
	path     string
}

func (m *mockIndexService) BuildIndex(_ context.Context, _, _ string) (int, error) {
	return 0, m.err
}

func (m *mockIndexService) Inspect(path string) (*domain.IndexManifest, error) {
	m.path = path
	return m.manifest, m.err
}
