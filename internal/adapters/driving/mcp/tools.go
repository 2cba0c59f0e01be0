package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// AskInput is the input schema for the ask_constitution tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"a question about the Constitution of India"`
}

// AskOutput is the output schema for the ask_constitution tool.
// On failure only Error and Message are set.
type AskOutput struct {
	Question  string   `json:"question,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Citations []string `json:"citations,omitempty"`
	Error     string   `json:"error,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// ScenarioInput is the input schema for the analyze_scenario tool.
type ScenarioInput struct {
	Scenario string `json:"scenario" jsonschema:"a hypothetical situation to analyse under the Constitution"`
}

// ScenarioOutput is the output schema for the analyze_scenario tool.
type ScenarioOutput struct {
	Scenario string `json:"scenario,omitempty"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_constitution",
		Description: "Answer a question about the Constitution of India, citing source pages",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_scenario",
		Description: "Analyse a hypothetical legal scenario under the Constitution of India",
	}, s.handleScenario)
}

// handleAsk handles the ask_constitution tool invocation.
// Failures are reported as tool errors, never as protocol errors.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	resp := s.ports.Answers.Respond(ctx, input.Question)
	if resp.Failure != nil {
		return failureResult(resp.Failure), AskOutput{
			Error:   resp.Failure.Error,
			Message: resp.Failure.Message,
		}, nil
	}

	output := AskOutput{
		Question:  resp.Answer.Question,
		Answer:    resp.Answer.Render(),
		Citations: make([]string, len(resp.Answer.Citations)),
	}
	for i, c := range resp.Answer.Citations {
		output.Citations[i] = c.String()
	}
	return nil, output, nil
}

// handleScenario handles the analyze_scenario tool invocation.
func (s *Server) handleScenario(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScenarioInput,
) (*mcp.CallToolResult, ScenarioOutput, error) {
	resp := s.ports.Scenarios.Respond(ctx, input.Scenario)
	if resp.Failure != nil {
		return failureResult(resp.Failure), ScenarioOutput{
			Error:   resp.Failure.Error,
			Message: resp.Failure.Message,
		}, nil
	}

	return nil, ScenarioOutput{
		Scenario: resp.Scenario,
		Analysis: resp.Analysis,
	}, nil
}

func failureResult(f *domain.Failure) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: f.Message + " " + f.Error}},
	}
}
