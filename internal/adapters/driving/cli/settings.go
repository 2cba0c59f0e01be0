package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus, index, chunking, retrieval and AI providers.

Settings live in config.toml under the samvidhan home directory
($SAMVIDHAN_HOME, or ~/.samvidhan).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: "Set a single setting by its dotted key.\n\nKeys:\n  " +
		strings.Join(services.SettingKeys(), "\n  "),
	Example: `  samvidhan settings set retrieval.top_k 8
  samvidhan settings set timeouts.request 90s`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key [provider]",
	Short: "Store the API key for a cloud provider",
	Long: `Prompts for an API key and stores it for every configured provider it
belongs to. The provider defaults to gemini.

Keys can also come from GOOGLE_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY,
including via a .env file; those are never written to config.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsAPIKey,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to build and query the index.
Changing the model requires rebuilding the index.`,
	Args: cobra.NoArgs,
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the model that writes answers and scenario analyses.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Directory: %s\n", settings.Corpus.Dir)
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Path: %s\n", settings.Index.Path)
	cmd.Printf("  Chunk size: %d\n", settings.Chunker.Size)
	cmd.Printf("  Chunk overlap: %d\n", settings.Chunker.Overlap)
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	printProviderAccess(cmd, settings.Embedding.Provider, settings.Embedding.BaseURL, settings.Embedding.APIKey)
	cmd.Printf("  Batch size: %d\n", settings.Embedding.BatchSize)
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  Requests/sec: %g\n", settings.Embedding.RequestsPerSecond)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	printProviderAccess(cmd, settings.LLM.Provider, settings.LLM.BaseURL, settings.LLM.APIKey)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Behaviour]")
	cmd.Printf("  Strict scenario errors: %t\n", settings.Scenario.StrictErrors)
	cmd.Printf("  Request timeout: %s\n", settings.Timeouts.Request)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'samvidhan settings api-key' or 'samvidhan settings embedding' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProviderAccess(cmd *cobra.Command, provider domain.AIProvider, baseURL, apiKey string) {
	if provider.IsLocal() || baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if !provider.RequiresAPIKey() {
		return
	}
	if apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	} else {
		cmd.Printf("  API Key: (not set, or export %s)\n", provider.APIKeyEnv())
	}
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	if key == services.KeyEmbedModel || key == services.KeyEmbedProvider ||
		key == services.KeyChunkSize || key == services.KeyChunkOverlap {
		cmd.Println("Note: rebuild the index for this change to take effect.")
	}
	cmd.Printf("Set %s = %s\n", key, displayValue(key, value))
	return nil
}

func displayValue(key, value string) string {
	if key == services.KeyEmbedAPIKey || key == services.KeyLLMAPIKey {
		return maskAPIKey(value)
	}
	return value
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProviderGemini
	if len(args) == 1 {
		provider = domain.AIProvider(strings.ToLower(args[0]))
	}
	if !provider.RequiresAPIKey() {
		return fmt.Errorf("%w: %s does not use an API key", domain.ErrInvalidInput, provider)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	var keys []string
	if settings.Embedding.Provider == provider {
		keys = append(keys, services.KeyEmbedAPIKey)
	}
	if settings.LLM.Provider == provider {
		keys = append(keys, services.KeyLLMAPIKey)
	}
	if len(keys) == 0 {
		return fmt.Errorf("%s is not the embedding or LLM provider; run 'samvidhan settings embedding' or 'samvidhan settings llm'", provider)
	}

	cmd.Printf("Enter %s API key: ", provider.Description())
	apiKey := readPassword(cmd, bufio.NewReader(cmd.InOrStdin()))
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required")
	}

	for _, key := range keys {
		if err := settingsService.Set(key, apiKey); err != nil {
			return err
		}
	}
	cmd.Printf("Stored API key %s for %s\n", maskAPIKey(apiKey), provider)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureEmbeddingProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

// providerChoice is what the user picked in a provider prompt.
type providerChoice struct {
	provider domain.AIProvider
	model    string
	apiKey   string
}

func promptProvider(cmd *cobra.Command, reader *bufio.Reader, title string,
	providers []domain.AIProvider, defaults map[domain.AIProvider]string) providerChoice {
	cmd.Println(title)
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	choice := providerChoice{provider: providers[idx-1]}

	defaultModel := defaults[choice.provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	if choice.model = readLine(reader); choice.model == "" {
		choice.model = defaultModel
	}

	if choice.provider.RequiresAPIKey() {
		cmd.Printf("Enter API key (blank keeps the stored key or uses %s): ", choice.provider.APIKeyEnv())
		choice.apiKey = readPassword(cmd, reader)
		cmd.Println()
	}
	return choice
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	choice := promptProvider(cmd, reader, "Select Embedding Provider",
		domain.AllEmbeddingProviders(), domain.DefaultEmbeddingModels())

	if err := settingsService.SetEmbeddingProvider(choice.provider, choice.model, choice.apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	if aiValidator != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		cmd.Print("Validating configuration... ")
		if err := aiValidator.ValidateEmbedding(&settings.Embedding); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("embedding configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", choice.provider.Description(), choice.model)
	cmd.Println("Rebuild the index with 'samvidhan index build' to use the new model.")
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	choice := promptProvider(cmd, reader, "Select LLM Provider",
		domain.AllLLMProviders(), domain.DefaultLLMModels())

	if err := settingsService.SetLLMProvider(choice.provider, choice.model, choice.apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if aiValidator != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		cmd.Print("Validating configuration... ")
		if err := aiValidator.ValidateLLM(&settings.LLM); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", choice.provider.Description(), choice.model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal, otherwise it
// reads a line from reader.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
