package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"khata/internal/core"
)

// Collections is a typed view over the Store for transaction lists.
// The collection a record is read from determines its kind.
type Collections struct {
	store Store
}

func NewCollections(store Store) *Collections {
	return &Collections{store: store}
}

func kindFor(key string) core.Kind {
	if key == KeyIncome {
		return core.Income
	}
	return core.Expense
}

// Load returns the transaction list stored under key, classified by the
// collection it came from. A missing key is an empty ledger, not an error.
func (c *Collections) Load(ctx context.Context, key string) ([]core.Transaction, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return core.Classify(txs, kindFor(key)), nil
}

// Save serializes txs under key. Kind is implied by the collection and is
// not written.
func (c *Collections) Save(ctx context.Context, key string, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save collection %s: %w", key, err)
	}
	return nil
}

// Currency returns the stored display currency, defaulting when unset or
// unrecognized.
func (c *Collections) Currency(ctx context.Context) (string, error) {
	raw, ok, err := c.store.Get(ctx, KeyCurrency)
	if err != nil {
		return "", fmt.Errorf("load currency: %w", err)
	}
	code := string(raw)
	if !ok || !core.KnownCurrency(code) {
		return core.DefaultCurrency, nil
	}
	return code, nil
}

// SetCurrency persists the display currency preference.
func (c *Collections) SetCurrency(ctx context.Context, code string) error {
	if err := c.store.Set(ctx, KeyCurrency, []byte(code)); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}
	return nil
}
