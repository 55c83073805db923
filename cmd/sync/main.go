// Command sync runs the outbound write-back loop: every tick it finds dirty
// transactions and merchant rules and pushes their computed columns to the
// spreadsheet. With -once it runs a single pass and exits, which is what the
// deploy pipeline uses for a forced flush.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgersync/internal/config"
	"ledgersync/internal/database"
	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/logger"
	"ledgersync/internal/sheets"
	syncpkg "ledgersync/internal/sync"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	once := flag.Bool("once", false, "run a single sync pass and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(once bool) error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	sheetsClient, err := sheets.NewGoogleClient(context.Background(), appConfig.SpreadsheetID, appConfig.ServiceAccountJSON)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	outbound := syncpkg.NewOutbound(dbManager.DB(), sheetsClient, syncpkg.DefaultLayout(), appConfig.SyncBatchSize)

	if once {
		return runPass(outbound, appConfig.SyncTimeout)
	}

	log.Infof("Starting sync loop, interval %s, timeout %s", appConfig.SyncInterval, appConfig.SyncTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(appConfig.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down sync loop")
			return nil
		case <-ticker.C:
			if err := runPass(outbound, appConfig.SyncTimeout); err != nil {
				log.Errorw("sync pass failed", "error", err)
			}
		}
	}
}

// runPass executes one outbound pass under the configured timeout. An
// already-running pass is not an error for the loop; the next tick retries.
func runPass(outbound *syncpkg.Outbound, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := outbound.Run(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrSyncInProgress) {
			logger.Get().Warn("sync pass skipped, previous run still in progress")
			return nil
		}
		return err
	}

	if result.Transactions > 0 || result.Rules > 0 {
		logger.Get().Infow("sync pass finished",
			"transactions", result.Transactions,
			"rules", result.Rules,
		)
	}
	return nil
}
