// Package chat provides the question and answer view for the TUI.
package chat

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

// ErrNoAnswerService indicates that no answer service was provided.
var ErrNoAnswerService = errors.New("answer service is required")

// View is the chat view: a question prompt over a transcript of answers.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.Prompt
	transcript *transcript.Transcript
	statusbar  *status.Bar

	answers driving.AnswerService
	ctx     context.Context

	width   int
	height  int
	ready   bool
	pending string
	err     error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, answers driving.AnswerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewPrompt(s, "Ask", "What does Article 21 protect?"),
		transcript: transcript.New(s, "Ask anything about the Constitution of India."),
		statusbar:  status.NewBar(s, km),
		answers:    answers,
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

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerCompleted:
		v.handleAnswer(msg.Response)
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

	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.transcript.Clear()
		v.statusbar.Clear()
		v.statusbar.SetHints(v.keymap.ShortHelp())
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

// submit sends the typed question unless one is already in flight.
func (v *View) submit() tea.Cmd {
	question := strings.TrimSpace(v.input.Value())
	if question == "" || v.pending != "" {
		return nil
	}

	v.pending = question
	v.err = nil
	v.input.Reset()
	v.statusbar.SetState(status.StateThinking)
	v.statusbar.SetMessage("Searching the Constitution...")

	return tea.Batch(v.ask(question), v.statusbar.Tick())
}

// ask answers a question off the update loop.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.answers == nil {
			return messages.ErrorOccurred{Err: ErrNoAnswerService}
		}
		return messages.AnswerCompleted{Response: v.answers.Respond(v.ctx, question)}
	}
}

// handleAnswer appends the response to the transcript.
func (v *View) handleAnswer(resp domain.AnswerResponse) {
	question := v.pending
	if question == "" {
		question = resp.Question
	}
	v.pending = ""
	v.statusbar.SetMessage("")

	if resp.Failure != nil {
		v.err = errors.New(resp.Failure.String())
		v.transcript.Append(transcript.Entry{Prompt: question, Body: resp.Failure.String(), Failed: true})
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(resp.Failure.Message)
		return
	}

	text := strings.TrimSpace(resp.Answer.Text)
	if text == "" {
		text = domain.NoAnswerText
	}
	citations := make([]string, len(resp.Answer.Citations))
	for i, c := range resp.Answer.Citations {
		citations[i] = c.String()
	}

	v.transcript.Append(transcript.Entry{Prompt: question, Body: text, Citations: citations})
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetCitations(len(citations))
	v.statusbar.SetHints(v.keymap.ChatHelp())
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Ask the Constitution"),
		"",
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
	v.transcript.SetDimensions(width, height-9) // header, input box, status
	v.statusbar.SetWidth(width)
}

// Reset clears the prompt and any error, keeping the transcript.
func (v *View) Reset() {
	v.input.Focus()
	v.input.Reset()
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Question returns the text currently typed.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the typed text.
func (v *View) SetQuestion(q string) {
	v.input.SetValue(q)
}

// Pending returns the question awaiting an answer, if any.
func (v *View) Pending() string {
	return v.pending
}

// Transcript returns the answered exchanges.
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
