package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"khata/internal/core"
	"khata/internal/storage"
)

// Event actions published on ledger changes.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// EventPublisher notifies interested parties that the ledger changed.
// Publishing is best effort: a failure is logged, never surfaced to the
// caller whose write already succeeded.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, action, collection, id string) error
}

// LedgerService orchestrates the storage collaborator and the pure core:
// it loads snapshots, applies mutations and hands derived views back to the
// transport layer. The core itself never sees storage.
type LedgerService struct {
	collections *storage.Collections
	events      EventPublisher

	// Serializes read-modify-write cycles on the collections.
	mu sync.Mutex
}

func NewLedgerService(collections *storage.Collections, events EventPublisher) *LedgerService {
	return &LedgerService{
		collections: collections,
		events:      events,
	}
}

func collectionFor(kind core.Kind) string {
	if kind == core.Income {
		return storage.KeyIncome
	}
	return storage.KeyExpenses
}

// Snapshot returns the merged, classified ledger: expenses first, then
// income, each in insertion order. Day grouping relies on this order for
// its stable tie-break.
func (s *LedgerService) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	expenses, err := s.collections.Load(ctx, storage.KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	income, err := s.collections.Load(ctx, storage.KeyIncome)
	if err != nil {
		return nil, fmt.Errorf("load income: %w", err)
	}
	return append(expenses, income...), nil
}

// Add validates and appends a new transaction to its collection, assigning
// an opaque unique id and stamping the creation day.
func (s *LedgerService) Add(ctx context.Context, kind core.Kind, amount float64, category, notes string, now time.Time) (core.Transaction, error) {
	tx := core.Transaction{
		ID:       uuid.NewString(),
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Notes:    strings.TrimSpace(notes),
		Date:     now.UTC().Format(time.RFC3339),
		Kind:     kind,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	key := collectionFor(kind)

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.collections.Load(ctx, key)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.collections.Save(ctx, key, append(txs, tx)); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"transaction_id", tx.ID,
		"kind", tx.Kind,
		"category", tx.Category,
		"amount", tx.Amount)

	s.publish(ctx, ActionCreated, key, tx.ID)
	return tx, nil
}

// Delete removes the transaction with the given id from whichever
// collection holds it. The id is the sole match key; deleting an unknown id
// is an idempotent no-op.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{storage.KeyExpenses, storage.KeyIncome} {
		txs, err := s.collections.Load(ctx, key)
		if err != nil {
			return err
		}
		kept := txs[:0:0]
		for _, tx := range txs {
			if tx.ID != id {
				kept = append(kept, tx)
			}
		}
		if len(kept) == len(txs) {
			continue
		}
		if err := s.collections.Save(ctx, key, kept); err != nil {
			return err
		}

		slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id, "collection", key)
		s.publish(ctx, ActionDeleted, key, id)
		return nil
	}

	slog.DebugContext(ctx, "Delete of unknown transaction ignored", "transaction_id", id)
	return nil
}

// Dashboard computes the running totals and the expense category breakdown
// over the current snapshot.
func (s *LedgerService) Dashboard(ctx context.Context) (core.Summary, []core.CategoryTotal, error) {
	txs, err := s.Snapshot(ctx)
	if err != nil {
		return core.Summary{}, nil, err
	}
	return core.Summarize(txs), core.CategoryBreakdown(txs), nil
}

// Transactions returns the filtered, day-grouped listing evaluated at now.
func (s *LedgerService) Transactions(ctx context.Context, f core.Filter, now time.Time) ([]core.DayGroup, error) {
	txs, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.GroupByDay(f.Apply(txs, now), now), nil
}

// Report renders the full ledger as a shareable text report. Propagates
// core.ErrNoTransactions on an empty ledger.
func (s *LedgerService) Report(ctx context.Context, now time.Time) (title, body string, err error) {
	txs, err := s.Snapshot(ctx)
	if err != nil {
		return "", "", err
	}
	code, err := s.collections.Currency(ctx)
	if err != nil {
		return "", "", err
	}
	body, err = core.BuildReport(txs, now, core.SymbolFor(code))
	if err != nil {
		return "", "", err
	}
	return core.ReportTitle(now), body, nil
}

// Currency returns the stored display currency.
func (s *LedgerService) Currency(ctx context.Context) (string, error) {
	return s.collections.Currency(ctx)
}

// SetCurrency persists the display currency; codes outside the symbol table
// are rejected on write (reads still default rather than fail).
func (s *LedgerService) SetCurrency(ctx context.Context, code string) error {
	if !core.KnownCurrency(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return s.collections.SetCurrency(ctx, code)
}

func (s *LedgerService) publish(ctx context.Context, action, collection, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, action, collection, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", action,
			"collection", collection,
			"transaction_id", id,
			"error", err)
	}
}
