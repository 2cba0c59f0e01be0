// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the question and answer view.
	ViewChat
	// ViewScenario is the scenario analysis view.
	ViewScenario
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewScenario:
		return "scenario"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AnswerCompleted carries the boundary response to a question.
type AnswerCompleted struct {
	Response domain.AnswerResponse
}

// AnalysisCompleted carries the boundary response to a scenario.
type AnalysisCompleted struct {
	Response domain.ScenarioResponse
}

// IndexLoaded carries the manifest of the index questions run against.
type IndexLoaded struct {
	Manifest *domain.IndexManifest
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
