package scenario

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

type mockScenarios struct {
	scenarios []string
	resp      domain.ScenarioResponse
}

func (m *mockScenarios) Analyze(context.Context, string) (string, error) {
	return m.resp.Analysis, nil
}

func (m *mockScenarios) Respond(_ context.Context, scenario string) domain.ScenarioResponse {
	m.scenarios = append(m.scenarios, scenario)
	resp := m.resp
	resp.Scenario = scenario
	return resp
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func analysisFrom(t *testing.T, cmd tea.Cmd) messages.AnalysisCompleted {
	t.Helper()
	for _, m := range run(cmd) {
		if done, ok := m.(messages.AnalysisCompleted); ok {
			return done
		}
	}
	t.Fatal("no AnalysisCompleted message")
	return messages.AnalysisCompleted{}
}

var examples = []string{"first example", "second example"}

func newReadyView(svc *mockScenarios) *View {
	v := NewView(nil, nil, svc, examples)
	v.SetDimensions(100, 30)
	return v
}

func TestView_SubmitAnalysesScenario(t *testing.T) {
	svc := &mockScenarios{resp: domain.ScenarioResponse{Analysis: "MOCK_ANALYSIS"}}
	v := newReadyView(svc)
	v.SetScenario("A private school refuses admission based on religion.")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, status.StateThinking, v.Status())

	v, _ = v.Update(analysisFrom(t, cmd))

	assert.Equal(t, []string{"A private school refuses admission based on religion."}, svc.scenarios)
	require.Len(t, v.Transcript(), 1)
	assert.Equal(t, "MOCK_ANALYSIS", v.Transcript()[0].Body)
	assert.Empty(t, v.Transcript()[0].Citations)
	assert.Equal(t, status.StateAnswered, v.Status())
	assert.Contains(t, v.View(), "MOCK_ANALYSIS")
}

func TestView_FailureIsRecorded(t *testing.T) {
	failure := domain.NewFailure(domain.ErrGenerationService, domain.ScenarioFailureMessage)
	v := newReadyView(&mockScenarios{resp: domain.ScenarioResponse{Failure: failure}})
	v.SetScenario("s")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v, _ = v.Update(analysisFrom(t, cmd))

	require.Len(t, v.Transcript(), 1)
	assert.True(t, v.Transcript()[0].Failed)
	assert.Equal(t, status.StateError, v.Status())
}

func TestView_TabCyclesExamples(t *testing.T) {
	v := newReadyView(&mockScenarios{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "first example", v.Scenario())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "second example", v.Scenario())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "first example", v.Scenario(), "wraps around")

	v.Reset()
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "first example", v.Scenario(), "reset restarts examples")
}

func TestView_NoExamples(t *testing.T) {
	v := NewView(nil, nil, &mockScenarios{}, nil)

	v.NextExample()

	assert.Empty(t, v.Scenario())
}

func TestView_BlankScenarioIgnored(t *testing.T) {
	svc := &mockScenarios{}
	v := newReadyView(svc)
	v.SetScenario("   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, svc.scenarios)
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	v.SetScenario("s")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var failed *messages.ErrorOccurred
	for _, m := range run(cmd) {
		if e, ok := m.(messages.ErrorOccurred); ok {
			failed = &e
		}
	}
	require.NotNil(t, failed)
	assert.ErrorIs(t, failed.Err, ErrNoScenarioService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newReadyView(&mockScenarios{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
