package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docent-ai/docent/internal/adapters/driving/api"
	"github.com/docent-ai/docent/internal/adapters/driving/watch"
	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/logger"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the Docent HTTP API.

Endpoints:
  POST /api/upload   multipart document upload (pdf, txt, md)
  POST /api/chat     one conversational turn for a session
  GET  /healthz      liveness probe

When [ingest].watch_dir is configured, files dropped into that
directory are ingested automatically.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	server := api.NewServer(api.Config{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, app.agent, app.ingestion)

	if cfg.Ingest.WatchDir != "" {
		watcher, err := watch.NewWatcher(app.ingestion, cfg.Ingest.WatchDir, domain.StrategyRecursive)
		if err != nil {
			return fmt.Errorf("configuring watch dir: %w", err)
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("watcher stopped: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http://%s:%d", cfg.Server.Host, cfg.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
