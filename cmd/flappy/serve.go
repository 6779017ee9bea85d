package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/web"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded runs as JSON over HTTP",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /healthz               - Liveness probe
  GET /api/scores?limit=N    - Best runs
  GET /api/scores/recent     - Most recent runs
  GET /api/scores/best       - Best score
  GET /api/scores/{id}       - One run
  GET /api/stats             - Aggregate statistics

Examples:
  flappy serve                  # Listen on :8080
  flappy serve --addr :9000
  flappy serve --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "flappy-web")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(flagAddr, store, logger).ListenAndServe(ctx)
}
