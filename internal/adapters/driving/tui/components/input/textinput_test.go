package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(nil, "Ask", "type here")

	assert.True(t, p.Focused())
	assert.Empty(t, p.Value())
	assert.Contains(t, p.View(), "Ask: ")
}

func TestPrompt_Typing(t *testing.T) {
	p := NewPrompt(nil, "Ask", "")

	for _, r := range "Article 14" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "Article 14", p.Value())
}

func TestPrompt_SetValueAndReset(t *testing.T) {
	p := NewPrompt(nil, "Scenario", "")

	p.SetValue("land acquisition")
	assert.Equal(t, "land acquisition", p.Value())

	p.Reset()
	assert.Empty(t, p.Value())
}

func TestPrompt_FocusAndBlur(t *testing.T) {
	p := NewPrompt(nil, "Ask", "")

	p.Blur()
	assert.False(t, p.Focused())

	p.Focus()
	assert.True(t, p.Focused())
}

func TestPrompt_SetWidth(t *testing.T) {
	p := NewPrompt(nil, "Ask", "")

	p.SetWidth(120)
	assert.Equal(t, 120, p.Width())

	p.SetWidth(5)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 20, p.textinput.Width, "input keeps a minimum width")
}
