// Package storage implements the key-value store the ledger collections
// live in. Collections are serialized JSON lists under logical keys such as
// "expenses" and "income"; the core engine only ever sees deserialized
// snapshots and never talks to storage directly.
package storage

import "context"

// Logical collection keys.
const (
	KeyExpenses = "expenses"
	KeyIncome   = "income"
	KeyCurrency = "userCurrency"
)

// Store is the key-value collaborator. Get reports a missing key through
// ok=false rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
