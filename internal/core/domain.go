package core

import (
	"errors"
	"math"
	"strings"
)

// Kind tells whether a transaction takes money out of the ledger or puts
// money into it.
type Kind string

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Transaction is one ledger entry. Amount is the stored magnitude in the
	// user's currency unit; the sign is derived from Kind, never stored.
	// Date keeps the raw textual encoding it was created with (see dates.go
	// for how heterogeneous encodings are normalized).
	Transaction struct {
		ID       string  `json:"id"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Notes    string  `json:"notes,omitempty"`
		Date     string  `json:"date"`
		Kind     Kind    `json:"-"`
	}

	// CategoryTotal is the summed expense amount for one category name.
	CategoryTotal struct {
		Name   string
		Amount float64
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category")
	ErrNoTransactions = errors.New("no transactions to report")
)

// Classify returns a copy of txs with every transaction tagged with kind.
// Used when loading a collection whose name implies the kind.
func Classify(txs []Transaction, kind Kind) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		t.Kind = kind
		out[i] = t
	}
	return out
}

// SafeAmount returns the amount this transaction contributes to sums.
// Negative, NaN and infinite amounts contribute zero so that a single bad
// record never corrupts aggregate totals. The raw value stays on the record
// for listings, where the inconsistency should remain visible.
func (t Transaction) SafeAmount() float64 {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return 0
	}
	return t.Amount
}

// SignedAmount is the transaction's contribution to balance: positive for
// income, negative for expense.
func (t Transaction) SignedAmount() float64 {
	if t.Kind == Income {
		return t.SafeAmount()
	}
	return -t.SafeAmount()
}

// Validate checks a transaction at creation time. Stored records are never
// re-validated; aggregation tolerates bad amounts via SafeAmount.
func (t Transaction) Validate() error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
