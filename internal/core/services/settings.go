package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMRate         = "llm.rate_per_second"
	keyResearchURL     = "research.url"
	keyResearchContract = "research.contract"
	keyResearchTimeout = "research.timeout_seconds"
	keyStorageBackend  = "storage.backend"
	keyStorageSeedFile = "storage.seed_file"
	keyServerAddr      = "server.addr"
	keyPromptsDir      = "prompts.dir"
)

// Environment variables that override stored settings when the stored
// value is empty.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvResearchURL  = "BLUEQUERY_RESEARCH_URL"
)

// defaultOllamaURL is the base URL assumed for a local Ollama server.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Get retrieves current application settings, applying environment
// overrides for unset secrets and the research URL.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:      s.getProvider(defaults.LLM.Provider),
			BaseURL:       s.configStore.GetString(keyLLMBaseURL),
			APIKey:        s.configStore.GetString(keyLLMAPIKey),
			RatePerSecond: s.getFloat(keyLLMRate, defaults.LLM.RatePerSecond),
		},
		Research: domain.ResearchSettings{
			URL:      s.configStore.GetString(keyResearchURL),
			Contract: s.getContract(defaults.Research.Contract),
			Timeout:  s.getSeconds(keyResearchTimeout, defaults.Research.Timeout),
		},
		Storage: domain.StorageSettings{
			Backend:  s.getBackend(defaults.Storage.Backend),
			SeedFile: s.configStore.GetString(keyStorageSeedFile),
		},
		Server: domain.ServerSettings{
			Addr:       s.getString(keyServerAddr, defaults.Server.Addr),
			PromptsDir: s.configStore.GetString(keyPromptsDir),
		},
	}

	// The model default follows the provider, not the default provider.
	settings.LLM.Model = s.getString(keyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}

	s.applyEnv(settings)
	return settings, nil
}

func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = s.envKey(settings.LLM.Provider)
	}
	if settings.Research.URL == "" {
		settings.Research.URL = s.getenv(EnvResearchURL)
	}
}

// envKey returns the API key the environment supplies for provider.
func (s *SettingsService) envKey(provider domain.AIProvider) string {
	var names []string
	switch provider {
	case domain.AIProviderGemini:
		names = []string{EnvGeminiAPIKey, EnvGoogleAPIKey}
	case domain.AIProviderOpenAI:
		names = []string{EnvOpenAIAPIKey}
	}
	for _, name := range names {
		if v := s.getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Save persists application settings. An API key that only came from the
// environment is not written to disk.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMAPIKey, s.storableKey(settings.LLM)},
		{keyLLMRate, settings.LLM.RatePerSecond},
		{keyResearchURL, settings.Research.URL},
		{keyResearchContract, string(settings.Research.Contract)},
		{keyResearchTimeout, int(settings.Research.Timeout / time.Second)},
		{keyStorageBackend, string(settings.Storage.Backend)},
		{keyStorageSeedFile, settings.Storage.SeedFile},
		{keyServerAddr, settings.Server.Addr},
		{keyPromptsDir, settings.Server.PromptsDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

func (s *SettingsService) storableKey(llm domain.LLMSettings) string {
	if llm.APIKey != "" && llm.APIKey == s.envKey(llm.Provider) &&
		s.configStore.GetString(keyLLMAPIKey) != llm.APIKey {
		return ""
	}
	return llm.APIKey
}

// SetLLMProvider configures the LLM provider. An empty apiKey is accepted
// when the environment supplies one.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" && s.envKey(provider) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.APIKey = apiKey

	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	return s.Save(settings)
}

// SetResearch configures the research backend. An empty URL disables
// deeper mode.
func (s *SettingsService) SetResearch(url string, contract domain.ResearchContract) error {
	if contract == "" {
		contract = domain.ResearchContractV1
	}
	if !contract.IsValid() {
		return fmt.Errorf("%w: invalid research contract: %s", domain.ErrInvalidInput, contract)
	}
	if err := s.configStore.Set(keyResearchURL, url); err != nil {
		return fmt.Errorf("save %s: %w", keyResearchURL, err)
	}
	if err := s.configStore.Set(keyResearchContract, string(contract)); err != nil {
		return fmt.Errorf("save %s: %w", keyResearchContract, err)
	}
	return nil
}

// SetStorage configures float storage.
func (s *SettingsService) SetStorage(backend domain.StorageBackend, seedFile string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, backend)
	}
	if err := s.configStore.Set(keyStorageBackend, string(backend)); err != nil {
		return fmt.Errorf("save %s: %w", keyStorageBackend, err)
	}
	if err := s.configStore.Set(keyStorageSeedFile, seedFile); err != nil {
		return fmt.Errorf("save %s: %w", keyStorageSeedFile, err)
	}
	return nil
}

// Validate checks that the AI flows can run with the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s requires an API key (set %s or run 'bluequery settings llm')",
			domain.ErrLLMUnavailable, settings.LLM.Provider.Description(), s.envHint(settings.LLM.Provider))
	}
	if settings.Research.URL != "" && !settings.Research.Contract.IsValid() {
		return fmt.Errorf("%w: invalid research contract: %s", domain.ErrInvalidInput, settings.Research.Contract)
	}
	return nil
}

func (s *SettingsService) envHint(provider domain.AIProvider) string {
	if provider == domain.AIProviderOpenAI {
		return EnvOpenAIAPIKey
	}
	return EnvGeminiAPIKey
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if n := s.configStore.GetInt(key); n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyLLMProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getContract(defaultVal domain.ResearchContract) domain.ResearchContract {
	contract := domain.ResearchContract(s.configStore.GetString(keyResearchContract))
	if !contract.IsValid() {
		return defaultVal
	}
	return contract
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
