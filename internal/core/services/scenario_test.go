package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

func TestScenarioService_Analyze(t *testing.T) {
	llm := &mockLLM{response: "MOCK_ANALYSIS"}
	svc := NewScenarioService(llm, newMockPrompts(), ScenarioConfig{})

	analysis, err := svc.Analyze(context.Background(), "A state bans a newspaper.")

	require.NoError(t, err)
	assert.Equal(t, "MOCK_ANALYSIS", analysis)
	require.Equal(t, 1, llm.calls)
	assert.Equal(t, "SCENARIO: A state bans a newspaper.", llm.prompts[0])
}

func TestScenarioService_EmptyScenario(t *testing.T) {
	llm := &mockLLM{response: "MOCK_ANALYSIS"}
	svc := NewScenarioService(llm, newMockPrompts(), ScenarioConfig{})

	_, err := svc.Analyze(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyScenario)

	_, err = svc.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyScenario)

	assert.Zero(t, llm.calls)
}

func TestScenarioService_LenientFailure(t *testing.T) {
	llm := &mockLLM{err: errors.New("quota exceeded")}
	svc := NewScenarioService(llm, newMockPrompts(), ScenarioConfig{})

	analysis, err := svc.Analyze(context.Background(), "scenario")

	require.NoError(t, err)
	assert.Equal(t, "Error generating response: quota exceeded", analysis)
}

func TestScenarioService_StrictFailure(t *testing.T) {
	tests := []struct {
		name string
		llm  *mockLLM
	}{
		{name: "model error", llm: &mockLLM{err: fmt.Errorf("%w: quota", domain.ErrGenerationService)}},
		{name: "timeout", llm: &mockLLM{err: context.DeadlineExceeded}},
		{name: "blank output", llm: &mockLLM{response: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewScenarioService(tt.llm, newMockPrompts(), ScenarioConfig{StrictErrors: true})

			analysis, err := svc.Analyze(context.Background(), "scenario")

			assert.Empty(t, analysis)
			assert.ErrorIs(t, err, domain.ErrGenerationService)
		})
	}
}

func TestScenarioService_Respond(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewScenarioService(&mockLLM{response: "MOCK_ANALYSIS"}, newMockPrompts(), ScenarioConfig{})

		resp := svc.Respond(context.Background(), "scenario")

		assert.Nil(t, resp.Failure)
		assert.Equal(t, "MOCK_ANALYSIS", resp.Analysis)
	})

	t.Run("strict failure", func(t *testing.T) {
		llm := &mockLLM{err: fmt.Errorf("%w: down", domain.ErrGenerationService)}
		svc := NewScenarioService(llm, newMockPrompts(), ScenarioConfig{StrictErrors: true})

		resp := svc.Respond(context.Background(), "scenario")

		assert.Empty(t, resp.Analysis)
		require.NotNil(t, resp.Failure)
		assert.Equal(t, "Failed to analyze the legal scenario.", resp.Failure.Message)
		assert.Equal(t, domain.FailureServiceUnavailable, resp.Failure.Kind)
	})

	t.Run("empty scenario", func(t *testing.T) {
		svc := NewScenarioService(&mockLLM{}, newMockPrompts(), ScenarioConfig{})

		resp := svc.Respond(context.Background(), " ")

		require.NotNil(t, resp.Failure)
		assert.Equal(t, domain.FailureInvalidInput, resp.Failure.Kind)
	})

	t.Run("panic", func(t *testing.T) {
		svc := NewScenarioService(&mockLLM{panicMsg: "boom"}, newMockPrompts(), ScenarioConfig{})

		resp := svc.Respond(context.Background(), "scenario")

		require.NotNil(t, resp.Failure)
		assert.Equal(t, domain.FailureInternal, resp.Failure.Kind)
	})
}
