package core

import (
	"sort"
	"time"
)

// DayGroup is all transactions sharing one calendar day, with per-day
// subtotals computed via the same semantics as Summarize.
type DayGroup struct {
	Label        string
	Transactions []Transaction
	Income       float64
	Expense      float64
	Balance      float64
}

// GroupByDay orders txs newest first and buckets them by calendar day.
// The sort is stable, so transactions on the same day keep their relative
// insertion order. Every input transaction lands in exactly one group;
// flattening the groups in order reproduces the full sorted input.
func GroupByDay(txs []Transaction, now time.Time) []DayGroup {
	type dated struct {
		tx Transaction
		at time.Time
	}

	sorted := make([]dated, len(txs))
	for i, t := range txs {
		sorted[i] = dated{tx: t, at: NormalizeDate(t.Date, now)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].at.After(sorted[j].at)
	})

	var groups []DayGroup
	index := make(map[string]int)
	for _, d := range sorted {
		label := FormatDay(d.at)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Transactions = append(groups[i].Transactions, d.tx)
	}

	for i := range groups {
		s := Summarize(groups[i].Transactions)
		groups[i].Income = s.TotalIncome
		groups[i].Expense = s.TotalExpense
		groups[i].Balance = s.Balance
	}
	return groups
}
