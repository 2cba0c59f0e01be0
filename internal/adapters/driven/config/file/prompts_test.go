package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "prompts"), store.Dir())
}

func TestDefaultPrompt(t *testing.T) {
	answer, ok := DefaultPrompt(driven.PromptAnswer)
	require.True(t, ok)
	assert.Contains(t, answer, "constitutional expert")
	assert.Contains(t, answer, "If the context is insufficient, say so")
	assert.Equal(t, 2, countVerbs(answer))

	scenario, ok := DefaultPrompt(driven.PromptScenario)
	require.True(t, ok)
	assert.Contains(t, scenario, "Supreme Court or High Court precedents")
	assert.Equal(t, 1, countVerbs(scenario))

	_, ok = DefaultPrompt("nope")
	assert.False(t, ok)
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnswer)
	require.NoError(t, err)

	for _, f := range []string{"answer.txt", "scenario.txt"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "Q: %s\nContext: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "answer.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_RejectsWrongPlaceholders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.txt"), []byte("no verbs here"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptScenario)

	require.NoError(t, err)
	def, _ := DefaultPrompt(driven.PromptScenario)
	assert.Equal(t, def, prompt)
}

func TestPromptStore_Load_RejectsOtherVerbs(t *testing.T) {
	tests := []struct {
		name   string
		custom string
	}{
		{name: "integer verb", custom: "Scenario %d: %s"},
		{name: "bare percent", custom: "Be 100% accurate about %s"},
		{name: "trailing percent", custom: "Scenario: %s at 100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.txt"), []byte(tt.custom), 0600))
			store, err := NewPromptStore(dir)
			require.NoError(t, err)

			prompt, err := store.Load(driven.PromptScenario)

			require.NoError(t, err)
			def, _ := DefaultPrompt(driven.PromptScenario)
			assert.Equal(t, def, prompt)
		})
	}
}

func TestPromptStore_Load_AcceptsEscapedPercent(t *testing.T) {
	dir := t.TempDir()
	custom := "Be 100%% accurate about %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.txt"), []byte(custom), 0600))
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptScenario)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
	assert.Equal(t, "Be 100% accurate about tenancy", fmt.Sprintf(prompt, "tenancy"))
}

func TestCountPlaceholders(t *testing.T) {
	n, err := countPlaceholders("%s and %s, 50%% off")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = countPlaceholders("%v")
	assert.Error(t, err)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptAnswer)
	require.NoError(t, os.Remove(filepath.Join(dir, "answer.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptAnswer)

	require.NoError(t, err)
	assert.Contains(t, prompt, "constitutional expert")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_CacheAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptScenario)
	require.NoError(t, err)

	modified := "Analyse: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.txt"), []byte(modified), 0600))

	cached, err := store.Load(driven.PromptScenario)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptScenario)
	require.NoError(t, err)
	assert.Equal(t, modified, fresh)
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)

	require.NoError(t, err)
	assert.Contains(t, prompt, "constitutional expert")
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = store.Load(driven.PromptAnswer)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && s[i+1] == 's' {
			n++
		}
	}
	return n
}
