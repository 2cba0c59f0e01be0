package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/services"
)

type mockAnswers struct {
	questions []string
	answer    *domain.Answer
	failure   *domain.Failure
}

func (m *mockAnswers) Answer(_ context.Context, question string) (*domain.Answer, error) {
	m.questions = append(m.questions, question)
	if m.failure != nil {
		return nil, errors.New(m.failure.Error)
	}
	return m.answer, nil
}

func (m *mockAnswers) Respond(_ context.Context, question string) domain.AnswerResponse {
	m.questions = append(m.questions, question)
	if m.failure != nil {
		return domain.AnswerResponse{Question: question, Failure: m.failure}
	}
	return domain.AnswerResponse{Question: question, Answer: m.answer}
}

type mockScenarios struct {
	scenarios []string
	analysis  string
	failure   *domain.Failure
}

func (m *mockScenarios) Analyze(_ context.Context, scenario string) (string, error) {
	m.scenarios = append(m.scenarios, scenario)
	return m.analysis, nil
}

func (m *mockScenarios) Respond(_ context.Context, scenario string) domain.ScenarioResponse {
	m.scenarios = append(m.scenarios, scenario)
	if m.failure != nil {
		return domain.ScenarioResponse{Scenario: scenario, Failure: m.failure}
	}
	return domain.ScenarioResponse{Scenario: scenario, Analysis: m.analysis}
}

type mockIndexer struct {
	sourceDir  string
	outputPath string
	count      int
	err        error
}

func (m *mockIndexer) BuildIndex(_ context.Context, sourceDir, outputPath string) (int, error) {
	m.sourceDir, m.outputPath = sourceDir, outputPath
	return m.count, m.err
}

func (m *mockIndexer) Inspect(string) (*domain.IndexManifest, error) {
	return nil, domain.ErrIndexNotFound
}

type mockIndexFactory struct {
	manifest *domain.IndexManifest
	inspects []string
}

func (m *mockIndexFactory) Build([]domain.IndexEntry, domain.IndexManifest) (driven.VectorIndex, error) {
	return nil, errors.New("not implemented")
}

func (m *mockIndexFactory) Load(context.Context, string) (driven.VectorIndex, error) {
	return nil, domain.ErrIndexNotFound
}

func (m *mockIndexFactory) Inspect(path string) (*domain.IndexManifest, error) {
	m.inspects = append(m.inspects, path)
	if m.manifest == nil {
		return nil, domain.ErrIndexNotFound
	}
	return m.manifest, nil
}

type mockValidator struct {
	err error
}

func (m *mockValidator) ValidateEmbedding(*domain.EmbeddingSettings) error { return m.err }
func (m *mockValidator) ValidateLLM(*domain.LLMSettings) error             { return m.err }

// runCLI executes the root command with fresh flag state and returns
// everything written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	askJSON, askTopK = false, 0
	scenarioJSON, scenarioExamples = false, false
	indexSource, indexOutput = "", ""
	versionVerbose = false
	verbose, quiet = false, false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// stubSession makes openSession return sess and records the needs it was
// asked for.
func stubSession(t *testing.T, sess *session) *ai.Needs {
	t.Helper()

	if sess.settings == nil {
		defaults := domain.DefaultAppSettings()
		sess.settings = &defaults
	}

	var seen ai.Needs
	original := openSession
	openSession = func(_ context.Context, needs ai.Needs, overrides ...func(*domain.AppSettings)) (*session, error) {
		seen = needs
		for _, override := range overrides {
			override(sess.settings)
		}
		return sess, nil
	}
	t.Cleanup(func() { openSession = original })
	return &seen
}

// stubSessionErr makes openSession fail with err.
func stubSessionErr(t *testing.T, err error) {
	t.Helper()

	original := openSession
	openSession = func(context.Context, ai.Needs, ...func(*domain.AppSettings)) (*session, error) {
		return nil, err
	}
	t.Cleanup(func() { openSession = original })
}

// useSettings installs a settings service over a temporary config file.
func useSettings(t *testing.T, validator driven.AIConfigValidator) *services.SettingsService {
	t.Helper()

	for _, p := range domain.AllLLMProviders() {
		if env := p.APIKeyEnv(); env != "" {
			t.Setenv(env, "")
		}
	}

	store, err := file.NewConfigStore(t.TempDir())
	if err != nil {
		t.Fatalf("config store: %v", err)
	}
	svc := services.NewSettingsService(store, validator)

	origSettings, origValidator := settingsService, aiValidator
	settingsService, aiValidator = svc, validator
	t.Cleanup(func() {
		settingsService, aiValidator = origSettings, origValidator
	})
	return svc
}
