// Package tui provides an interactive terminal user interface for samvidhan.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answers answers constitutional questions.
	Answers driving.AnswerService

	// Scenarios analyses hypothetical scenarios.
	Scenarios driving.ScenarioService

	// Index describes the loaded index on the menu. Optional.
	Index driving.IndexService

	// IndexPath is the artifact Index inspects.
	IndexPath string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answers == nil {
		return ErrMissingAnswerService
	}
	if p.Scenarios == nil {
		return ErrMissingScenarioService
	}
	return nil
}
