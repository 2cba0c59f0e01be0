// Package scenario provides the scenario analysis view for the TUI.
package scenario

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
)

// ErrNoScenarioService indicates that no scenario service was provided.
var ErrNoScenarioService = errors.New("scenario service is required")

// View is the scenario view. Tab fills the prompt with the next example.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.Prompt
	transcript *transcript.Transcript
	statusbar  *status.Bar

	scenarios driving.ScenarioService
	examples  []string
	example   int
	ctx       context.Context

	width   int
	height  int
	ready   bool
	pending string
	err     error
}

// NewView creates a new scenario view.
func NewView(s *styles.Styles, km *keymap.KeyMap, scenarios driving.ScenarioService, examples []string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ScenarioHelp())

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewPrompt(s, "Scenario", "Describe a situation, or press tab for an example"),
		transcript: transcript.New(s, "Describe a situation to see which constitutional provisions apply."),
		statusbar:  bar,
		scenarios:  scenarios,
		examples:   examples,
		example:    -1,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the scenario view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnalysisCompleted:
		v.handleAnalysis(msg.Response)
		return v, nil

	case messages.ErrorOccurred:
		v.pending = ""
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(msg.String(), v.keymap.Example):
		v.NextExample()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.transcript.Clear()
		v.statusbar.Clear()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Up), keymap.Matches(msg.String(), v.keymap.Down):
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd

	case keymap.Matches(msg.String(), v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// NextExample fills the prompt with the next example scenario.
func (v *View) NextExample() {
	if len(v.examples) == 0 {
		return
	}
	v.example = (v.example + 1) % len(v.examples)
	v.input.SetValue(v.examples[v.example])
}

// submit sends the typed scenario unless one is already in flight.
func (v *View) submit() tea.Cmd {
	scenario := strings.TrimSpace(v.input.Value())
	if scenario == "" || v.pending != "" {
		return nil
	}

	v.pending = scenario
	v.err = nil
	v.input.Reset()
	v.statusbar.SetState(status.StateThinking)
	v.statusbar.SetMessage("Analysing...")

	return tea.Batch(v.analyze(scenario), v.statusbar.Tick())
}

// analyze runs the analysis off the update loop.
func (v *View) analyze(scenario string) tea.Cmd {
	return func() tea.Msg {
		if v.scenarios == nil {
			return messages.ErrorOccurred{Err: ErrNoScenarioService}
		}
		return messages.AnalysisCompleted{Response: v.scenarios.Respond(v.ctx, scenario)}
	}
}

// handleAnalysis appends the response to the transcript.
func (v *View) handleAnalysis(resp domain.ScenarioResponse) {
	scenario := v.pending
	if scenario == "" {
		scenario = resp.Scenario
	}
	v.pending = ""
	v.statusbar.SetMessage("")

	if resp.Failure != nil {
		v.err = errors.New(resp.Failure.String())
		v.transcript.Append(transcript.Entry{Prompt: scenario, Body: resp.Failure.String(), Failed: true})
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(resp.Failure.Message)
		return
	}

	v.transcript.Append(transcript.Entry{Prompt: scenario, Body: resp.Analysis})
	v.statusbar.SetState(status.StateAnswered)
}

// View renders the scenario view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Scenario Analysis"),
		v.styles.Muted.Render("General information, not legal advice."),
		v.input.View(),
		"",
		v.transcript.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.transcript.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Reset clears the prompt and any error, keeping past analyses.
func (v *View) Reset() {
	v.input.Focus()
	v.input.Reset()
	v.example = -1
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Scenario returns the text currently typed.
func (v *View) Scenario() string {
	return v.input.Value()
}

// SetScenario sets the typed text.
func (v *View) SetScenario(s string) {
	v.input.SetValue(s)
}

// Pending returns the scenario awaiting analysis, if any.
func (v *View) Pending() string {
	return v.pending
}

// Transcript returns the analysed scenarios.
func (v *View) Transcript() []transcript.Entry {
	return v.transcript.Entries()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
