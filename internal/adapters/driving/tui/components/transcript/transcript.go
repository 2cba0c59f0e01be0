// Package transcript provides the scrolling question and answer log.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/styles"
)

// Entry is one exchange: what was asked and what came back.
type Entry struct {
	Prompt    string
	Body      string
	Citations []string
	Failed    bool
}

// Transcript renders entries into a scrollable viewport, newest last.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles
	entries  []Entry
	empty    string
	width    int
	height   int
}

// New creates an empty transcript. empty is shown until the first entry.
func New(s *styles.Styles, empty string) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	t := &Transcript{
		viewport: viewport.New(80, 10),
		styles:   s,
		empty:    empty,
		width:    80,
		height:   10,
	}
	t.refresh()
	return t
}

// Update forwards scrolling keys and mouse events to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// Append adds an entry and scrolls to it.
func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
	t.refresh()
	t.viewport.GotoBottom()
}

// Entries returns every entry in order.
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Clear removes every entry.
func (t *Transcript) Clear() {
	t.entries = nil
	t.refresh()
}

// SetDimensions resizes the viewport and rewraps the content.
func (t *Transcript) SetDimensions(width, height int) {
	if height < 3 {
		height = 3
	}
	t.width, t.height = width, height
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

// Content returns the full rendered transcript, visible or not.
func (t *Transcript) Content() string {
	if len(t.entries) == 0 {
		return t.styles.Muted.Render(t.empty)
	}

	wrap := lipgloss.NewStyle().Width(max(t.width-2, 20))
	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		var b strings.Builder
		b.WriteString(t.styles.Question.Render("› " + e.Prompt))
		b.WriteString("\n")

		body := wrap.Render(e.Body)
		if e.Failed {
			b.WriteString(t.styles.Error.Render(body))
		} else {
			b.WriteString(t.styles.Normal.Render(body))
		}

		if len(e.Citations) > 0 {
			b.WriteString("\n")
			b.WriteString(t.styles.Subtitle.Render("Sources:"))
			for _, c := range e.Citations {
				b.WriteString("\n  ")
				b.WriteString(t.styles.Citation.Render(c))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func (t *Transcript) refresh() {
	t.viewport.SetContent(t.Content())
}
