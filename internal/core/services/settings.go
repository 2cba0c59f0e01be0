package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCorpusDir      = "corpus.dir"
	KeyIndexPath      = "index.path"
	KeyChunkSize      = "chunker.size"
	KeyChunkOverlap   = "chunker.overlap"
	KeyTopK           = "retrieval.top_k"
	KeyEmbedProvider  = "embedding.provider"
	KeyEmbedModel     = "embedding.model"
	KeyEmbedBaseURL   = "embedding.base_url"
	KeyEmbedAPIKey    = "embedding.api_key"
	KeyEmbedBatchSize = "embedding.batch_size"
	KeyEmbedRPS       = "embedding.requests_per_second"
	KeyLLMProvider    = "llm.provider"
	KeyLLMModel       = "llm.model"
	KeyLLMBaseURL     = "llm.base_url"
	KeyLLMAPIKey      = "llm.api_key"
	KeyScenarioStrict = "scenario.strict_errors"
	KeyRequestTimeout = "timeouts.request"
)

const (
	defaultOllamaURL    = "http://localhost:11434"
	defaultIndexRelPath = "vector_store"
)

type keyKind int

const (
	kindString keyKind = iota
	kindPositiveInt
	kindNonNegativeInt
	kindFloat
	kindBool
	kindDuration
	kindEmbeddingProvider
	kindLLMProvider
)

// settingKeys lists every key Set accepts.
var settingKeys = map[string]keyKind{
	KeyCorpusDir:      kindString,
	KeyIndexPath:      kindString,
	KeyChunkSize:      kindPositiveInt,
	KeyChunkOverlap:   kindNonNegativeInt,
	KeyTopK:           kindPositiveInt,
	KeyEmbedProvider:  kindEmbeddingProvider,
	KeyEmbedModel:     kindString,
	KeyEmbedBaseURL:   kindString,
	KeyEmbedAPIKey:    kindString,
	KeyEmbedBatchSize: kindPositiveInt,
	KeyEmbedRPS:       kindFloat,
	KeyLLMProvider:    kindLLMProvider,
	KeyLLMModel:       kindString,
	KeyLLMBaseURL:     kindString,
	KeyLLMAPIKey:      kindString,
	KeyScenarioStrict: kindBool,
	KeyRequestTimeout: kindDuration,
}

// SettingKeys returns every settable key in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore      driven.ConfigStore
	aiValidator      driven.AIConfigValidator
	defaultIndexPath string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithDefaultIndexPath sets the index path used when none is configured.
func WithDefaultIndexPath(path string) SettingsOption {
	return func(s *SettingsService) {
		if path != "" {
			s.defaultIndexPath = path
		}
	}
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil, in which case Validate skips provider pings.
func NewSettingsService(
	configStore driven.ConfigStore,
	aiValidator driven.AIConfigValidator,
	opts ...SettingsOption,
) *SettingsService {
	s := &SettingsService{
		configStore:      configStore,
		aiValidator:      aiValidator,
		defaultIndexPath: filepath.Join(defaultIndexRelPath, domain.DefaultIndexName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Empty API keys are filled from the provider's environment variable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Dir: s.getString(KeyCorpusDir, defaults.Corpus.Dir),
		},
		Index: domain.IndexSettings{
			Path: s.getString(KeyIndexPath, s.defaultIndexPath),
		},
		Chunker: domain.ChunkerSettings{
			Size:    s.getInt(KeyChunkSize, defaults.Chunker.Size),
			Overlap: s.getOverlap(defaults.Chunker.Overlap),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(KeyTopK, defaults.Retrieval.TopK),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          s.getProvider(KeyEmbedProvider, defaults.Embedding.Provider),
			BaseURL:           s.configStore.GetString(KeyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(KeyEmbedAPIKey),
			BatchSize:         s.getInt(KeyEmbedBatchSize, defaults.Embedding.BatchSize),
			RequestsPerSecond: s.configStore.GetFloat(KeyEmbedRPS),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(KeyLLMProvider, defaults.LLM.Provider),
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Scenario: domain.ScenarioSettings{
			StrictErrors: s.getBool(KeyScenarioStrict, defaults.Scenario.StrictErrors),
		},
		Timeouts: domain.TimeoutSettings{
			Request: s.getDuration(KeyRequestTimeout, defaults.Timeouts.Request),
		},
	}

	settings.Embedding.Model = s.getString(KeyEmbedModel, domain.DefaultEmbeddingModels()[settings.Embedding.Provider])
	settings.LLM.Model = s.getString(KeyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])

	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = envAPIKey(settings.Embedding.Provider)
	}
	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = envAPIKey(settings.LLM.Provider)
	}
	if settings.Embedding.Provider.IsLocal() && settings.Embedding.BaseURL == "" {
		settings.Embedding.BaseURL = defaultOllamaURL
	}
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}

	return settings, nil
}

// Save persists application settings.
// API keys that came from the environment are not written to disk.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyCorpusDir, settings.Corpus.Dir},
		{KeyIndexPath, settings.Index.Path},
		{KeyChunkSize, settings.Chunker.Size},
		{KeyChunkOverlap, settings.Chunker.Overlap},
		{KeyTopK, settings.Retrieval.TopK},
		{KeyEmbedProvider, settings.Embedding.Provider.String()},
		{KeyEmbedModel, settings.Embedding.Model},
		{KeyEmbedBaseURL, settings.Embedding.BaseURL},
		{KeyEmbedBatchSize, settings.Embedding.BatchSize},
		{KeyEmbedRPS, settings.Embedding.RequestsPerSecond},
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyScenarioStrict, settings.Scenario.StrictErrors},
		{KeyRequestTimeout, settings.Timeouts.Request},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if key := settings.Embedding.APIKey; key != "" && key != envAPIKey(settings.Embedding.Provider) {
		if err := s.configStore.Set(KeyEmbedAPIKey, key); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if key := settings.LLM.APIKey; key != "" && key != envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(KeyLLMAPIKey, key); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if key == KeyChunkOverlap || key == KeyChunkSize {
		size, overlap := s.getInt(KeyChunkSize, domain.DefaultChunkSize), s.getOverlap(domain.DefaultChunkOverlap)
		if key == KeyChunkSize {
			size = parsed.(int)
		} else {
			overlap = parsed.(int)
		}
		if overlap >= size {
			return fmt.Errorf("%w: chunker.overlap (%d) must be less than chunker.size (%d)",
				domain.ErrInvalidInput, overlap, size)
		}
	}

	return s.configStore.Set(key, parsed)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !isEmbeddingProvider(provider) {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if apiKey == "" && settings.Embedding.Provider == provider {
		apiKey = settings.Embedding.APIKey
	}
	if apiKey == "" {
		apiKey = envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s (or set %s)", domain.ErrInvalidInput, provider, provider.APIKeyEnv())
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = modelOrDefault(model, domain.DefaultEmbeddingModels()[provider])
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if apiKey == "" && settings.LLM.Provider == provider {
		apiKey = settings.LLM.APIKey
	}
	if apiKey == "" {
		apiKey = envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s (or set %s)", domain.ErrInvalidInput, provider, provider.APIKeyEnv())
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = modelOrDefault(model, domain.DefaultLLMModels()[provider])
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are usable and, when a validator
// is set, that both providers answer a ping.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Chunker.Size <= 0 || settings.Chunker.Overlap < 0 || settings.Chunker.Overlap >= settings.Chunker.Size {
		return fmt.Errorf("%w: chunker size %d with overlap %d",
			domain.ErrInvalidInput, settings.Chunker.Size, settings.Chunker.Overlap)
	}
	if settings.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: retrieval.top_k must be positive", domain.ErrInvalidInput)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %s", domain.ErrAINotConfigured, settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %s", domain.ErrAINotConfigured, settings.LLM.Provider)
	}

	if s.aiValidator == nil {
		return nil
	}
	if err := s.aiValidator.ValidateEmbedding(&settings.Embedding); err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}
	if err := s.aiValidator.ValidateLLM(&settings.LLM); err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	defaults.Index.Path = s.defaultIndexPath
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getOverlap allows an explicit zero, unlike getInt.
func (s *SettingsService) getOverlap(defaultVal int) int {
	if _, exists := s.configStore.Get(KeyChunkOverlap); !exists {
		return defaultVal
	}
	if val := s.configStore.GetInt(KeyChunkOverlap); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if d := s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return defaultVal
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func parseSetting(kind keyKind, value string) (any, error) {
	switch kind {
	case kindPositiveInt, kindNonNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 0 || (kind == kindPositiveInt && n == 0) {
			return nil, fmt.Errorf("%d is out of range", n)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, fmt.Errorf("%g is negative", f)
		}
		return f, nil
	case kindBool:
		return strconv.ParseBool(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s is not positive", d)
		}
		return d, nil
	case kindEmbeddingProvider:
		if !isEmbeddingProvider(domain.AIProvider(value)) {
			return nil, fmt.Errorf("%q does not support embeddings", value)
		}
		return value, nil
	case kindLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return nil, fmt.Errorf("unknown provider %q", value)
		}
		return value, nil
	default:
		return value, nil
	}
}

func isEmbeddingProvider(provider domain.AIProvider) bool {
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			return true
		}
	}
	return false
}

func envAPIKey(provider domain.AIProvider) string {
	if env := provider.APIKeyEnv(); env != "" {
		return os.Getenv(env)
	}
	return ""
}

func modelOrDefault(model, defaultModel string) string {
	if model != "" {
		return model
	}
	return defaultModel
}

// baseURLFor keeps a custom URL for local providers and clears it for cloud ones.
func baseURLFor(provider domain.AIProvider, current string) string {
	if !provider.IsLocal() {
		return ""
	}
	if current == "" {
		return defaultOllamaURL
	}
	return current
}
