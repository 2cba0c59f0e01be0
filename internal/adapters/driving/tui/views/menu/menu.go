// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	index    string
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Ask", Description: "Questions answered from the Constitution, with sources", View: messages.ViewChat},
			{Label: "Scenario", Description: "Constitutional analysis of a hypothetical case", View: messages.ViewScenario},
			{Label: "Help", Description: "Keybindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.IndexLoaded:
		v.SetIndex(msg.Manifest, msg.Err)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Samvidhan"))
	b.WriteString("\n")
	b.WriteString(v.styles.Tricolour(min(v.width, 36)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("The Constitution of India, answered"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal

		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		line := cursor + style.Render(item.Label)
		if item.Description != "" {
			line += "  " + v.styles.Muted.Render(item.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.index != "" {
		b.WriteString("\n")
		b.WriteString(v.index)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetIndex records the loaded index for the footer.
func (v *View) SetIndex(manifest *domain.IndexManifest, err error) {
	switch {
	case err != nil:
		v.index = v.styles.Warning.Render("Index: " + err.Error())
	case manifest != nil:
		v.index = v.styles.Muted.Render(fmt.Sprintf("Index: %d chunks, %s, built %s",
			manifest.Count, manifest.EmbeddingModel, manifest.CreatedAt.Local().Format("2 Jan 2006 15:04")))
	default:
		v.index = ""
	}
}

// IndexSummary returns the rendered index line, if any.
func (v *View) IndexSummary() string {
	return v.index
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
