package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API (or any compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
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
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "gemini-2.5-flash",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderOllama: "llama3.2",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for Gemini/OpenAI).
	APIKey string

	// RatePerSecond caps outbound model calls. Zero disables limiting.
	RatePerSecond float64
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

// ResearchContract selects how research backend responses are parsed.
type ResearchContract string

// Research backend contracts.
const (
	// ResearchContractV1 requires {"version":"1","answer":"..."}.
	ResearchContractV1 ResearchContract = "v1"

	// ResearchContractLegacy accepts result.raw, answer or message.
	ResearchContractLegacy ResearchContract = "legacy"
)

// IsValid returns true if the contract is recognised.
func (c ResearchContract) IsValid() bool {
	return c == ResearchContractV1 || c == ResearchContractLegacy
}

// ResearchSettings holds the external research backend configuration.
type ResearchSettings struct {
	// URL is the endpoint receiving POST {query}. Empty disables deeper mode.
	URL string

	// Contract selects the response format.
	Contract ResearchContract

	// Timeout bounds a single research request.
	Timeout time.Duration
}

// IsConfigured returns true if a research backend URL is set.
func (r ResearchSettings) IsConfigured() bool {
	return r.URL != ""
}

// StorageBackend selects the float store implementation.
type StorageBackend string

// Storage backends.
const (
	// StorageMemory keeps floats in process memory.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite persists floats in a SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageMemory || b == StorageSQLite
}

// StorageSettings holds float dataset storage configuration.
type StorageSettings struct {
	// Backend is the float store implementation.
	Backend StorageBackend

	// SeedFile is an optional YAML/JSON file with the initial floats.
	// The embedded seed is used when empty.
	SeedFile string
}

// ServerSettings holds the HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// PromptsDir overrides the prompt template directory.
	PromptsDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Research holds research backend settings.
	Research ResearchSettings

	// Storage holds float storage settings.
	Storage StorageSettings

	// Server holds HTTP server settings.
	Server ServerSettings
}

// Defaults for settings that are not configured.
const (
	DefaultServerAddr       = "127.0.0.1:8080"
	DefaultResearchTimeout  = 60 * time.Second
	DefaultLLMRatePerSecond = 1.0
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured until an API key or local provider is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:      AIProviderGemini,
			Model:         DefaultLLMModels()[AIProviderGemini],
			RatePerSecond: DefaultLLMRatePerSecond,
		},
		Research: ResearchSettings{
			Contract: ResearchContractV1,
			Timeout:  DefaultResearchTimeout,
		},
		Storage: StorageSettings{
			Backend: StorageMemory,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}
