package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui/views/scenario"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chatView answers questions.
	chatView *chat.View

	// scenarioView analyses scenarios.
	scenarioView *scenario.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingAnswerService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		chatView:     chat.NewView(s, km, ports.Answers),
		scenarioView: scenario.NewView(s, km, ports.Scenarios, domain.ExampleScenarios()),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.scenarioView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("samvidhan - Constitution of India"),
		a.loadIndex(),
	)
}

// loadIndex reads the manifest for the menu footer.
func (a *App) loadIndex() tea.Cmd {
	if a.ports.Index == nil || a.ports.IndexPath == "" {
		return nil
	}
	return func() tea.Msg {
		manifest, err := a.ports.Index.Inspect(a.ports.IndexPath)
		return messages.IndexLoaded{Manifest: manifest, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			a.err = a.chatView.Err()
		case messages.ViewScenario:
			a.scenarioView, cmd = a.scenarioView.Update(msg)
			a.err = a.scenarioView.Err()
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewChat:
			a.chatView.Reset()
			return a, a.chatView.Init()
		case messages.ViewScenario:
			a.scenarioView.Reset()
			return a, a.scenarioView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.IndexLoaded:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	// Responses go to their own view even if the user navigated away.
	case messages.AnswerCompleted:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.AnalysisCompleted:
		a.scenarioView, cmd = a.scenarioView.Update(msg)
		a.err = a.scenarioView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewScenario:
			a.scenarioView, cmd = a.scenarioView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, cursor blink) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewScenario:
		a.scenarioView, cmd = a.scenarioView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewScenario:
		return a.scenarioView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ask:
  (type)      Enter a question
  enter       Send
  ↑/↓, pgup   Scroll answers
  ctrl+l      Clear answers

Scenario:
  (type)      Describe a situation
  tab         Fill in an example scenario
  enter       Analyse

Answers cite the source page of every passage used.
Scenario analyses are general information, not legal advice.

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.scenarioView.SetDimensions(width, height)
}
