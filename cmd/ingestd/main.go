// Command ingestd runs the HTTP API server that ingests SMS alerts and
// serves the recorded transactions.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smsledger/sms-expense-backend/internal/api"
	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
	"github.com/smsledger/sms-expense-backend/internal/cli"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/config"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/logging"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseServeFlags()

	cfg := config.LoadOrEnvWithPath(flags.Config)
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}
	if flags.Port != 0 {
		cfg.Server.Port = flags.Port
	}

	logger := logging.NewLoggerWithSystem(cfg.Logging, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	pipeline := ingest.New(store, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, store, pipeline, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "port", cfg.Server.Port)
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
