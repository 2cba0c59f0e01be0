package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"submit", km.Submit, []string{"enter"}},
		{"up", km.Up, []string{"up", "pgup"}},
		{"down", km.Down, []string{"down", "pgdown"}},
		{"example", km.Example, []string{"tab"}},
		{"clear", km.Clear, []string{"ctrl+l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Contains(t, km.ScenarioHelp(), km.Example)
	assert.Contains(t, km.ChatHelp(), km.Clear)
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("enter", km.Submit))
	assert.True(t, Matches("pgdown", km.Down))
	assert.False(t, Matches("q", km.Quit), "q is typed into prompts, not a quit key")
	assert.False(t, Matches("", km.Back))
}
