// Package mcp provides an MCP (Model Context Protocol) server adapter for samvidhan.
// It lets AI assistants ask constitutional questions and analyse scenarios
// against the locally built index.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")

// ErrMissingScenarioService is returned when the scenario service is not provided.
var ErrMissingScenarioService = errors.New("mcp: scenario service is required")
