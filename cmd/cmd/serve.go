package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coolfinds/internal/logger"
	"coolfinds/internal/scheduler"
	"coolfinds/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, if enabled, the autonomous timer",
	Long: `Start the HTTP server exposing article and product generation. When
scheduler.enabled is set, a background timer fires full autonomous runs and
featured-product refreshes at the configured interval.

Example:
  coolfinds serve
  coolfinds serve --config ./.coolfinds.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			logger.Error("Server exited with error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(a.cfg.Server, a.store, a.media, a.articles, a.products, a.runner)

	if a.cfg.Scheduler.Enabled {
		sched := scheduler.New(a.cfg.Scheduler.Interval, a.runner, a.products, a.store)
		sched.Start(ctx)
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
