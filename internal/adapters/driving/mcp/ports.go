package mcp

import (
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answers answers constitutional questions.
	Answers driving.AnswerService

	// Scenarios analyses hypothetical scenarios.
	Scenarios driving.ScenarioService

	// Index exposes the manifest resource. Optional.
	Index driving.IndexService

	// IndexPath is the artifact whose manifest is served.
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
