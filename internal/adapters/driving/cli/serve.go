package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API and the /ws/chat websocket.

Prompt templates are reloaded when they change on disk while the server
runs. The server stops gracefully on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, "+domain.DefaultServerAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := svc()
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Chat:     s.Chat,
		Flows:    s.Flows,
		Reports:  s.Reports,
		Datasets: s.Datasets,
		Floats:   s.Floats,
		Sessions: s.Sessions,
	})
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = s.Addr
	}
	if addr == "" {
		addr = domain.DefaultServerAddr
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		cmd.Printf("Blue Query API listening on http://%s\n", addr)
		return server.Run(ctx, addr)
	})
	if s.Watcher != nil {
		g.Go(func() error {
			runWatcher(ctx, s.Watcher)
			return nil
		})
	}
	return g.Wait()
}

// runWatcher runs the prompt watcher. A failing watcher only disables
// reloading; the server keeps running.
func runWatcher(ctx context.Context, w Runner) {
	if err := w.Run(ctx); err != nil {
		logger.Error("Prompt reloading disabled: %v", err)
	}
}
