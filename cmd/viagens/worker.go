package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"viagens/internal/amqp"
	"viagens/internal/cli"
	"viagens/internal/log"
	"viagens/internal/sheets"
	gsheet "viagens/internal/sheets/google"
	memsheet "viagens/internal/sheets/memory"
	"viagens/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:         "worker",
	Short:       "Mirror ledger changes from AMQP to Google Sheets",
	Annotations: map[string]string{annotationLogStdout: ""},
	RunE:        runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if err := appCfg.ValidateWorker(); err != nil {
		return err
	}
	logger := logger.WithComponent(log.ComponentWorker)

	ctx, cancel := cli.SignalContext(cmd.Context(), logger)
	defer cancel()

	mirror, err := newMirror(ctx)
	if err != nil {
		logger.Error("Failed to initialize ledger mirror", log.FieldError, err)
		return err
	}
	sync := worker.NewSyncWorker(mirror, logger)

	client, err := amqp.NewClient(appCfg.AMQPURL, appCfg.AMQPExchange, appCfg.AMQPQueue, logger)
	if err != nil {
		return fmt.Errorf("connect to AMQP: %w", err)
	}
	defer client.Close()

	// Startup sync catches changes published while the worker was down.
	if deps, err := openLedger(ctx, appCfg, logger); err != nil {
		logger.Warn("Skipping startup sync, ledger unavailable", log.FieldError, err)
	} else {
		if err := sync.StartupSync(ctx, deps.store.Snapshot()); err != nil {
			logger.Warn("Startup sync failed", log.FieldError, err)
		}
		_ = deps.Close()
	}

	logger.Info("Worker consuming ledger changes",
		"exchange", appCfg.AMQPExchange,
		"queue", appCfg.AMQPQueue)
	err = client.ConsumeLedgerChanged(ctx, sync.HandleLedgerChanged)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", log.FieldError, err)
		return err
	}
	logger.Info("Worker stopped")
	return nil
}

// newMirror returns the Sheets client, or an in-memory mirror when no
// spreadsheet is configured.
func newMirror(ctx context.Context) (sheets.Mirror, error) {
	if appCfg.GoogleSpreadsheetID == "" {
		logger.Warn("GOOGLE_SPREADSHEET_ID not set, mirroring to memory")
		return memsheet.New(), nil
	}
	client, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   appCfg.GoogleSpreadsheetID,
		SheetName:       appCfg.GoogleSheetName,
		CredentialsJSON: appCfg.GoogleServiceAccountJSON,
		CredentialsFile: appCfg.GoogleServiceAccountFile,
	}, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
