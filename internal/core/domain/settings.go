package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// APIKeyEnv returns the environment variable consulted when no API key is
// stored for this provider.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderGemini:
		return "GOOGLE_API_KEY"
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// CorpusSettings locates the source documents.
type CorpusSettings struct {
	// Dir is the directory holding the corpus files.
	Dir string
}

// IndexSettings locates the persisted index artifact.
type IndexSettings struct {
	// Path is the artifact directory.
	Path string
}

// ChunkerSettings configures page splitting.
type ChunkerSettings struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is how many trailing characters carry into the next chunk.
	Overlap int
}

// RetrievalSettings configures the query policy.
type RetrievalSettings struct {
	// TopK is how many chunks are retrieved per question.
	TopK int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// BatchSize caps texts per batch request during index build.
	BatchSize int

	// RequestsPerSecond throttles batch requests. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ScenarioSettings configures the scenario path.
type ScenarioSettings struct {
	// StrictErrors makes model failures return ErrGenerationService instead
	// of an "Error generating response" analysis string.
	StrictErrors bool
}

// TimeoutSettings bounds remote calls.
type TimeoutSettings struct {
	// Request bounds each embedding or generation call.
	Request time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Corpus    CorpusSettings
	Index     IndexSettings
	Chunker   ChunkerSettings
	Retrieval RetrievalSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Scenario  ScenarioSettings
	Timeouts  TimeoutSettings
}

// Defaults used by DefaultAppSettings.
const (
	DefaultCorpusDir      = "data"
	DefaultIndexName      = "faiss_index_constitution"
	DefaultChunkSize      = 800
	DefaultChunkOverlap   = 100
	DefaultTopK           = 5
	DefaultEmbedBatchSize = 100
	DefaultRequestTimeout = 60 * time.Second
)

// DefaultAppSettings returns settings with sensible defaults.
// Both providers default to Gemini; the API key comes from the
// environment or the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus:    CorpusSettings{Dir: DefaultCorpusDir},
		Chunker:   ChunkerSettings{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		Retrieval: RetrievalSettings{TopK: DefaultTopK},
		Embedding: EmbeddingSettings{
			Provider:  AIProviderGemini,
			Model:     DefaultEmbeddingModels()[AIProviderGemini],
			BatchSize: DefaultEmbedBatchSize,
		},
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
		},
		Timeouts: TimeoutSettings{Request: DefaultRequestTimeout},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "models/embedding-001",
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-1.5-flash",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Gemini models
		"models/embedding-001":      768,
		"models/text-embedding-004": 768,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
