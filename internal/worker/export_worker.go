// Package worker keeps the configured spreadsheet in sync with the ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"khata/internal/amqp"
	"khata/internal/core"
	"khata/internal/services"
	"khata/internal/sheets"
)

// ReportSource is the slice of the ledger service the worker needs.
type ReportSource interface {
	Snapshot(ctx context.Context) ([]core.Transaction, error)
	Report(ctx context.Context, now time.Time) (title, body string, err error)
}

// ExportWorker regenerates the shared report whenever the ledger changes
// and on a periodic schedule, so the spreadsheet converges even if events
// are missed.
type ExportWorker struct {
	ledger   ReportSource
	reports  sheets.ReportWriter
	appender sheets.RowAppender
	interval time.Duration
	now      func() time.Time
}

func NewExportWorker(ledger ReportSource, reports sheets.ReportWriter, appender sheets.RowAppender, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		ledger:   ledger,
		reports:  reports,
		appender: appender,
		interval: interval,
		now:      time.Now,
	}
}

// HandleLedgerEvent processes a single ledger change event from AMQP.
// Created transactions are appended to the row log, then the full report
// is re-exported regardless of action.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"action", msg.Action,
		"collection", msg.Collection,
		"transaction_id", msg.ID)

	if msg.Action == services.ActionCreated && w.appender != nil {
		if err := w.appendCreated(ctx, msg.ID); err != nil {
			// The periodic full export covers the gap.
			slog.ErrorContext(ctx, "Failed to append transaction row",
				"transaction_id", msg.ID,
				"error", err)
		}
	}

	return w.Export(ctx)
}

func (w *ExportWorker) appendCreated(ctx context.Context, id string) error {
	txs, err := w.ledger.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	for _, tx := range txs {
		if tx.ID != id {
			continue
		}
		rowRef, err := w.appender.AppendTransaction(ctx, tx)
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "Appended transaction row", "transaction_id", id, "row_ref", rowRef)
		return nil
	}
	// Deleted again before we got to it; nothing to append.
	slog.DebugContext(ctx, "Created transaction no longer in snapshot", "transaction_id", id)
	return nil
}

// Export renders the current report and writes it to the report sheet.
// An empty ledger is not an error: the sheet is left untouched.
func (w *ExportWorker) Export(ctx context.Context) error {
	title, body, err := w.ledger.Report(ctx, w.now())
	if errors.Is(err, core.ErrNoTransactions) {
		slog.DebugContext(ctx, "Skipping export of empty ledger")
		return nil
	}
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if err := w.reports.WriteReport(ctx, title, lines); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Run exports on the configured interval until the context is cancelled.
// Event-driven exports happen independently via HandleLedgerEvent.
func (w *ExportWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Export worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Export worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
