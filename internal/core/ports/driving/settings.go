package driving

import "github.com/custodia-labs/bluequery/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetResearch configures the research backend.
	SetResearch(url string, contract domain.ResearchContract) error

	// SetStorage configures float storage.
	SetStorage(backend domain.StorageBackend, seedFile string) error

	// Validate checks if current settings are complete.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
