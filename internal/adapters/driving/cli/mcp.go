package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask
constitutional questions and analyse scenarios.

Tools:
  ask_constitution   answer a question from the index, with citations
  analyze_scenario   analyse a hypothetical legal scenario

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  samvidhan mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  samvidhan mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "samvidhan": {
        "command": "/path/to/samvidhan",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	sess, err := openSession(cmd.Context(), ai.Needs{Embedding: true, LLM: true, Index: true})
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("%w (run 'samvidhan index build' first)", err)
		}
		return err
	}
	defer sess.Close()

	ports := &mcp.Ports{
		Answers:   sess.answers,
		Scenarios: sess.scenarios,
		Index:     sess.indexer,
		IndexPath: sess.settings.Index.Path,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
