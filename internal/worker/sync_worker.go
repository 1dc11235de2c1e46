// Package worker mirrors ledger changes to an external spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"viagens/internal/amqp"
	"viagens/internal/core"
	"viagens/internal/ledger"
	"viagens/internal/log"
	"viagens/internal/sheets"
)

// SyncWorker rewrites the mirror from ledger snapshots.
type SyncWorker struct {
	mirror sheets.LedgerMirror
	reader sheets.LedgerReader
	logger *log.Logger
}

// NewSyncWorker builds a worker. When the mirror can also be read, writes
// that would not change its content are skipped.
func NewSyncWorker(mirror sheets.LedgerMirror, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Default()
	}
	w := &SyncWorker{
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
	}
	if r, ok := mirror.(sheets.LedgerReader); ok {
		w.reader = r
	}
	return w
}

// HandleLedgerChanged processes a single ledger change message from AMQP.
func (w *SyncWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	if msg == nil {
		return errors.New("nil message")
	}
	w.logger.InfoContext(ctx, "Processing ledger change",
		log.FieldEvent, msg.Event,
		log.FieldEntryID, msg.EntryID,
		"entries", len(msg.Entries),
		"timestamp", msg.Timestamp)

	if err := w.sync(ctx, msg.Entries, msg.Total); err != nil {
		return fmt.Errorf("sync ledger to sheets: %w", err)
	}
	return nil
}

// StartupSync mirrors the current ledger once, to recover from changes
// published while the worker was down.
func (w *SyncWorker) StartupSync(ctx context.Context, snap ledger.Snapshot) error {
	w.logger.InfoContext(ctx, "Startup sync", "entries", len(snap.Entries), "total", snap.Total)
	if err := w.sync(ctx, snap.Entries, snap.Total); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}

func (w *SyncWorker) sync(ctx context.Context, entries []core.BudgetEntry, total float64) error {
	if w.reader != nil {
		current, err := w.reader.ReadEntries(ctx)
		if err != nil {
			w.logger.WarnContext(ctx, "Could not read mirror, rewriting it", log.FieldError, err)
		} else if slices.Equal(current, entries) {
			w.logger.DebugContext(ctx, "Mirror already up to date", "entries", len(entries))
			return nil
		}
	}

	ref, err := w.mirror.Replace(ctx, entries, total)
	if err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "Successfully mirrored ledger",
		log.FieldSheetsRef, ref,
		"entries", len(entries),
		"total", total)
	return nil
}
