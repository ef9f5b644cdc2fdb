package http

import "khata/internal/core"

// Wire shapes for API responses. Kept separate from core so the pure types
// never grow transport concerns.

type transactionJSON struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes,omitempty"`
	Date     string  `json:"date"`
}

type summaryJSON struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"count"`
}

type categoryTotalJSON struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type dayGroupJSON struct {
	Label        string            `json:"label"`
	Transactions []transactionJSON `json:"transactions"`
	Income       float64           `json:"income"`
	Expense      float64           `json:"expense"`
	Balance      float64           `json:"balance"`
}

func buildTransaction(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:       tx.ID,
		Kind:     string(tx.Kind),
		Amount:   tx.Amount,
		Category: tx.Category,
		Notes:    tx.Notes,
		Date:     tx.Date,
	}
}

func buildSummary(s core.Summary) summaryJSON {
	return summaryJSON{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		Count:        s.Count,
	}
}

func buildCategoryTotals(totals []core.CategoryTotal) []categoryTotalJSON {
	out := make([]categoryTotalJSON, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalJSON{Name: ct.Name, Amount: ct.Amount})
	}
	return out
}

func buildDayGroups(groups []core.DayGroup) []dayGroupJSON {
	out := make([]dayGroupJSON, 0, len(groups))
	for _, g := range groups {
		txs := make([]transactionJSON, 0, len(g.Transactions))
		for _, tx := range g.Transactions {
			txs = append(txs, buildTransaction(tx))
		}
		out = append(out, dayGroupJSON{
			Label:        g.Label,
			Transactions: txs,
			Income:       g.Income,
			Expense:      g.Expense,
			Balance:      g.Balance,
		})
	}
	return out
}
