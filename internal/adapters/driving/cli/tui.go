package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

The TUI has two modes, mirroring the ask and scenario commands:
  Ask       question and answer with cited sources
  Scenario  analysis of a hypothetical situation

Controls:
  ↑/k, ↓/j  Navigate the menu
  Enter     Select / Send
  Tab       Example scenario
  Esc       Back
  ?         Help
  Ctrl+C    Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	sess, err := openSession(cmd.Context(), ai.Needs{Embedding: true, LLM: true, Index: true})
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("%w (run 'samvidhan index build' first)", err)
		}
		return err
	}
	defer sess.Close()

	app, err := tui.NewApp(&tui.Ports{
		Answers:   sess.answers,
		Scenarios: sess.scenarios,
		Index:     sess.indexer,
		IndexPath: sess.settings.Index.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
