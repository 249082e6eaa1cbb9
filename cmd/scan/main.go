// Command scan ingests a whole SMS backup export in one pass.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
	"github.com/smsledger/sms-expense-backend/internal/application/scan"
	"github.com/smsledger/sms-expense-backend/internal/cli"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/config"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/logging"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseScanFlags()
	if flags.BackupPath == "" {
		fmt.Fprintln(os.Stderr, "error: -backup is required")
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(flags.Config)
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}

	logger := logging.NewLoggerWithSystem(cfg.Logging, "scan")

	senders := flags.SenderList()
	if len(senders) == 0 {
		senders = cfg.Scan.Senders
	}
	after, err := flags.AfterTime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid -after date: %v\n", err)
		os.Exit(2)
	}

	cli.PrintHeader("SMS Backup Scan")
	cli.PrintScanConfiguration(flags.BackupPath, senders, flags.After)

	messages, err := scan.LoadBackup(flags.BackupPath)
	if err != nil {
		logger.Error("failed to load backup", "path", flags.BackupPath, "error", err)
		os.Exit(1)
	}
	logger.Info("backup loaded", "messages", len(messages))

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := ingest.New(store, logger)
	scanner := scan.NewScanner(pipeline, logger)

	report := scanner.Run(ctx, messages, scan.Options{
		Senders: senders,
		After:   after,
	})

	cli.PrintScanReport(&report)

	if report.Errored > 0 {
		os.Exit(1)
	}
}
