// Package cli provides the samvidhan command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose bool
	quiet   bool
)

// Dependencies are the adapters main wires into the CLI.
type Dependencies struct {
	Settings   driving.SettingsService
	Validator  driven.AIConfigValidator
	Indexes    driven.VectorIndexFactory
	Prompts    driven.PromptStore
	Extractors filesystem.Extractors
	Bulk       driven.BulkLoader
}

var (
	settingsService driving.SettingsService
	aiValidator     driven.AIConfigValidator
	indexFactory    driven.VectorIndexFactory
	promptStore     driven.PromptStore
	extractors      filesystem.Extractors
	bulkLoader      driven.BulkLoader
)

var rootCmd = &cobra.Command{
	Use:   "samvidhan",
	Short: "Ask questions about the Constitution of India",
	Long: `samvidhan answers questions about the Constitution of India using
retrieval-augmented generation over a locally built index, and analyses
hypothetical legal scenarios.

Get started:
  samvidhan settings api-key          # store a Gemini API key
  samvidhan index build --source data # index the PDFs in ./data
  samvidhan ask "What does Article 21 protect?"
  samvidhan tui                       # interactive ask and scenario modes`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if verbose && quiet {
			return errors.New("--verbose and --quiet cannot be used together")
		}
		if quiet {
			logger.SetLevel(logger.LevelSilent)
			return nil
		}
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings on stderr")
}

// Configure installs the adapters used by every command.
func Configure(deps Dependencies) {
	settingsService = deps.Settings
	aiValidator = deps.Validator
	indexFactory = deps.Indexes
	promptStore = deps.Prompts
	extractors = deps.Extractors
	bulkLoader = deps.Bulk
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
