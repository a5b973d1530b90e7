// Package cli provides the bluequery command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Runner is a background task that runs until its context is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// Services aggregates the driving ports used by the commands.
type Services struct {
	Chat     driving.ChatService
	Flows    driving.FlowService
	Reports  driving.ReportService
	Datasets driving.DatasetService
	Floats   driving.FloatService
	Settings driving.SettingsService

	// Sessions creates one chat session per conversation.
	Sessions driving.ChatSessionFactory

	// Watcher reloads prompt templates while serving. May be nil.
	Watcher Runner

	// Addr is the configured HTTP listen address.
	Addr string
}

// Bootstrap builds the services for a config directory. The returned
// cleanup function releases them once the command finishes.
type Bootstrap func(ctx context.Context, configDir string) (*Services, func() error, error)

var (
	services  *Services
	bootstrap Bootstrap
	cleanup   func() error

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "bluequery",
	Short: "Ask questions about ARGO ocean floats",
	Long: `Blue Query answers questions about ARGO ocean floats in the Arabian Sea
and the Bay of Bengal.

It routes questions to AI flows, generates synthetic oceanographic datasets,
renders PDF reports and dashboard snapshots, and serves the same features
over HTTP, websocket and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.bluequery)")
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services, skipping the bootstrap.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		if cerr := cleanup(); cerr != nil {
			logger.Warn("Cleanup failed: %v", cerr)
		}
		cleanup = nil
	}
	return err
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || bootstrap == nil || !needsServices(cmd) {
		return nil
	}
	s, done, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("starting bluequery: %w", err)
	}
	services, cleanup = s, done
	return nil
}

// needsServices reports whether cmd uses the services at all.
func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return true
}

// errNotConfigured is returned when a command's service was not wired.
func errNotConfigured(name string) error {
	return fmt.Errorf("%s service not configured", name)
}

var errNoServices = errors.New("services not configured")

// svc returns the active services or an error when none were injected.
func svc() (*Services, error) {
	if services == nil {
		return nil, errNoServices
	}
	return services, nil
}
