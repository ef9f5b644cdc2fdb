package worker

import (
	"context"
	"strings"
	"testing"
	"time"

	"khata/internal/amqp"
	"khata/internal/core"
	"khata/internal/services"
	sheetsmem "khata/internal/sheets/memory"
	"khata/internal/storage"
)

func newTestLedger(t *testing.T) *services.LedgerService {
	t.Helper()
	store := storage.NewMemoryStore()
	return services.NewLedgerService(storage.NewCollections(store), nil)
}

func TestHandleLedgerEventExportsReport(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	sink := sheetsmem.New()
	w := NewExportWorker(ledger, sink, sink, time.Minute)
	w.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	tx, err := ledger.Add(ctx, core.Expense, 55.25, "Groceries", "", w.now())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	msg := amqp.NewLedgerEventMessage(services.ActionCreated, storage.KeyExpenses, tx.ID)
	if err := w.HandleLedgerEvent(ctx, msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	title, lines := sink.Report()
	if title != "Ledger Report - 15 Mar 2024" {
		t.Fatalf("title = %q", title)
	}
	if len(lines) == 0 || !strings.Contains(strings.Join(lines, "\n"), "Groceries") {
		t.Fatalf("exported report missing transaction: %v", lines)
	}

	rows := sink.Rows()
	if len(rows) != 1 || rows[0].ID != tx.ID {
		t.Fatalf("appended rows = %+v, want the created transaction", rows)
	}
}

func TestHandleLedgerEventDeletedTransactionNotAppended(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	sink := sheetsmem.New()
	w := NewExportWorker(ledger, sink, sink, time.Minute)

	if _, err := ledger.Add(ctx, core.Income, 100, "Salary", "", time.Now()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Event for an id that no longer exists in the snapshot.
	msg := amqp.NewLedgerEventMessage(services.ActionCreated, storage.KeyIncome, "gone")
	if err := w.HandleLedgerEvent(ctx, msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}
	if len(sink.Rows()) != 0 {
		t.Fatalf("no row should be appended for a vanished transaction")
	}
}

func TestExportEmptyLedgerIsNoop(t *testing.T) {
	ctx := context.Background()
	sink := sheetsmem.New()
	w := NewExportWorker(newTestLedger(t), sink, sink, time.Minute)

	if err := w.Export(ctx); err != nil {
		t.Fatalf("Export on empty ledger: %v", err)
	}
	if title, lines := sink.Report(); title != "" || len(lines) != 0 {
		t.Fatalf("empty ledger must not touch the sheet, got title=%q lines=%v", title, lines)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	sink := sheetsmem.New()
	w := NewExportWorker(newTestLedger(t), sink, sink, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := w.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v, want context.DeadlineExceeded", err)
	}
}
