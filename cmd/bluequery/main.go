// Package main is the entry point for the bluequery CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/custodia-labs/bluequery/internal/adapters/driven/ai"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/config/watch"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/render"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/research"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/seed"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bluequery/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/cli"
	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/core/services"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// snapshotColumns is the panel grid width of dashboard snapshots.
const snapshotColumns = 3

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires every adapter into the core services.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, func() error, error) {
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (*cli.Services, func() error, error) {
		_ = cleanup()
		return nil, nil, err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fail(fmt.Errorf("open config: %w", err))
	}
	dataDir := filepath.Dir(configStore.Path())

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator()).WithEnv(os.Getenv)
	settings, err := settingsService.Get()
	if err != nil {
		return fail(fmt.Errorf("load settings: %w", err))
	}

	promptDir := settings.Server.PromptsDir
	if promptDir == "" {
		promptDir = filepath.Join(dataDir, "prompts")
	}
	if err := os.MkdirAll(promptDir, 0700); err != nil {
		return fail(fmt.Errorf("create prompt directory: %w", err))
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fail(fmt.Errorf("open prompts: %w", err))
	}

	aiResult := ai.Init(ctx, &settings.LLM, prompts)
	closers = append(closers, func() error {
		aiResult.Close()
		return nil
	})
	for _, w := range aiResult.Warnings {
		logger.Warn("%s", w)
	}

	floatStore, err := openFloatStore(settings.Storage.Backend, dataDir, &closers)
	if err != nil {
		return fail(err)
	}
	floats := services.NewFloatService(floatStore, seed.NewSource(settings.Storage.SeedFile))
	if n, err := floats.EnsureSeeded(ctx); err != nil {
		return fail(fmt.Errorf("seed floats: %w", err))
	} else if n > 0 {
		logger.Debug("Seeded %d floats", n)
	}

	datasets := services.NewDatasetService(time.Now)
	flows := services.NewFlowService(aiResult.LLMService, aiResult.PromptStore)
	reports := services.NewReportService(
		flows,
		render.NewPDFRenderer(),
		render.NewSnapshotRenderer(snapshotColumns),
		datasets,
	)

	var researchClient driven.ResearchClient
	if settings.Research.IsConfigured() {
		researchClient = research.NewClient(research.Config{
			URL:      settings.Research.URL,
			Contract: settings.Research.Contract,
			Timeout:  settings.Research.Timeout,
		})
	}
	chat := services.NewChatService(flows, reports, researchClient)

	canned, err := seed.DefaultCanned()
	if err != nil {
		return fail(fmt.Errorf("load canned answers: %w", err))
	}

	return &cli.Services{
		Chat:     chat,
		Flows:    flows,
		Reports:  reports,
		Datasets: datasets,
		Floats:   floats,
		Settings: settingsService,
		Sessions: func() driving.ChatSession {
			return services.NewChatSession(chat, canned)
		},
		Watcher: watch.NewPromptWatcher(promptDir, prompts, 0),
		Addr:    settings.Server.Addr,
	}, cleanup, nil
}

// openFloatStore opens the configured float store backend.
func openFloatStore(backend domain.StorageBackend, dataDir string, closers *[]func() error) (driven.FloatStore, error) {
	switch backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open float database: %w", err)
		}
		*closers = append(*closers, store.Close)
		return store.FloatStore(), nil
	default:
		return memory.NewFloatStore(), nil
	}
}
