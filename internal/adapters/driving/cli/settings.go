package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI provider, research backend and float storage.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider that answers chat and report questions.`,
	RunE:  runSettingsLLM,
}

var settingsResearchCmd = &cobra.Command{
	Use:   "research",
	Short: "Configure the research backend",
	Long: `Configure the research backend used in deeper mode.

Contracts:
  v1     - responses must be {"version":"1","answer":"..."}
  legacy - accepts result.raw, answer or message fields`,
	RunE: runSettingsResearch,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure float storage",
	Long: `Configure where the float dataset is stored.

Backends:
  memory - floats are loaded from the seed on every start
  sqlite - floats persist in floats.db, including CSV imports`,
	RunE: runSettingsStorage,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsResearchCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() (driving.SettingsService, error) {
	s, err := svc()
	if err != nil {
		return nil, err
	}
	if s.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return s.Settings, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	ss, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := ss.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Rate limit: %g/s\n", settings.LLM.RatePerSecond)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Research]")
	if settings.Research.IsConfigured() {
		cmd.Printf("  URL: %s\n", settings.Research.URL)
	} else {
		cmd.Printf("  URL: (not set, deeper mode disabled)\n")
	}
	cmd.Printf("  Contract: %s\n", settings.Research.Contract)
	cmd.Printf("  Timeout: %s\n", settings.Research.Timeout)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.SeedFile != "" {
		cmd.Printf("  Seed file: %s\n", settings.Storage.SeedFile)
	} else {
		cmd.Printf("  Seed file: (embedded)\n")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.PromptsDir != "" {
		cmd.Printf("  Prompts: %s\n", settings.Server.PromptsDir)
	}
	cmd.Println()

	if err := ss.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'bluequery settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	ss, err := settingsService()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, ss, reader)
}

func configureLLMProvider(cmd *cobra.Command, ss driving.SettingsService, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd, reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := ss.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := ss.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsResearch(cmd *cobra.Command, _ []string) error {
	ss, err := settingsService()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Print("Research backend URL (empty disables deeper mode): ")
	url := readLine(reader)

	contracts := []domain.ResearchContract{domain.ResearchContractV1, domain.ResearchContractLegacy}
	cmd.Println("Select response contract")
	for i, c := range contracts {
		cmd.Printf("  %d. %s\n", i+1, c)
	}
	cmd.Print("\nEnter choice [1]: ")
	contract := contracts[parseChoice(readLine(reader), len(contracts), 1)-1]

	if err := ss.SetResearch(url, contract); err != nil {
		return fmt.Errorf("failed to configure research backend: %w", err)
	}
	if url == "" {
		cmd.Println("Research backend disabled.")
		return nil
	}
	cmd.Printf("Research backend configured: %s (%s)\n", url, contract)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	ss, err := settingsService()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	backends := []domain.StorageBackend{domain.StorageMemory, domain.StorageSQLite}
	cmd.Println("Select storage backend")
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[parseChoice(readLine(reader), len(backends), 1)-1]

	cmd.Print("Seed file (empty for the built-in dataset): ")
	seedFile := readLine(reader)

	if err := ss.SetStorage(backend, seedFile); err != nil {
		return fmt.Errorf("failed to configure storage: %w", err)
	}
	cmd.Printf("Storage configured: %s\n", backend)
	cmd.Println("Restart running servers to apply the change.")
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

// readPassword reads a secret without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		password, err := term.ReadPassword(int(in.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

