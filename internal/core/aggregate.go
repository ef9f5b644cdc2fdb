package core

import "sort"

// Summary holds the running totals for a transaction set. Balance is always
// TotalIncome - TotalExpense; both totals accumulate SafeAmount so invalid
// records contribute zero instead of corrupting the dashboard.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	Count        int
}

// Summarize computes totals over a classified transaction list. Empty input
// yields all zeroes, never an error.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.TotalIncome += t.SafeAmount()
		default:
			s.TotalExpense += t.SafeAmount()
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.Count = len(txs)
	return s
}

// CategoryTotals sums expense amounts per category name. Accumulation is by
// map so the result is independent of input order. Income is not broken out
// by category.
func CategoryTotals(txs []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range txs {
		if t.Kind != Expense {
			continue
		}
		totals[t.Category] += t.SafeAmount()
	}
	return totals
}

// CategoryBreakdown is CategoryTotals flattened into a deterministic order
// for rendering: largest amount first, name as the tie-break.
func CategoryBreakdown(txs []Transaction) []CategoryTotal {
	totals := CategoryTotals(txs)
	out := make([]CategoryTotal, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryTotal{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}
