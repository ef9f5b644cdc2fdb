package core

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Amount: 100, Kind: Income, Category: "Salary", Date: "2024-01-10"},
		{Amount: 40, Kind: Expense, Category: "Food", Date: "2024-01-10"},
	}
	got := Summarize(txs)
	if got.TotalIncome != 100 || got.TotalExpense != 40 || got.Balance != 60 || got.Count != 2 {
		t.Fatalf("Summarize = %+v, want income=100 expense=40 balance=60 count=2", got)
	}

	cats := CategoryTotals(txs)
	if len(cats) != 1 || cats["Food"] != 40 {
		t.Fatalf("CategoryTotals = %v, want map[Food:40]", cats)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.TotalIncome != 0 || got.TotalExpense != 0 || got.Balance != 0 || got.Count != 0 {
		t.Fatalf("Summarize(nil) = %+v, want all zeroes", got)
	}
	if cats := CategoryTotals(nil); len(cats) != 0 {
		t.Fatalf("CategoryTotals(nil) = %v, want empty", cats)
	}
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	lists := [][]Transaction{
		{{Amount: 1.1, Kind: Income}, {Amount: 2.2, Kind: Expense}, {Amount: 3.3, Kind: Income}},
		{{Amount: 0.1, Kind: Expense}, {Amount: 0.2, Kind: Expense}},
		{{Amount: 999999.99, Kind: Income}},
		nil,
	}
	for i, txs := range lists {
		s := Summarize(txs)
		if s.Balance != s.TotalIncome-s.TotalExpense {
			t.Fatalf("case %d: balance %v != income %v - expense %v", i, s.Balance, s.TotalIncome, s.TotalExpense)
		}
	}
}

func TestSummarizeIgnoresInvalidAmounts(t *testing.T) {
	txs := []Transaction{
		{Amount: -5, Kind: Expense, Category: "Food"},
		{Amount: math.NaN(), Kind: Income, Category: "Salary"},
		{Amount: math.Inf(1), Kind: Income, Category: "Salary"},
		{Amount: 10, Kind: Income, Category: "Salary"},
	}
	s := Summarize(txs)
	if s.TotalIncome != 10 || s.TotalExpense != 0 || s.Balance != 10 {
		t.Fatalf("Summarize = %+v, want invalid amounts to contribute zero", s)
	}
	// The records still count: they are listed, just neutral in sums.
	if s.Count != 4 {
		t.Fatalf("Count = %d, want 4", s.Count)
	}
	if cats := CategoryTotals(txs); cats["Food"] != 0 {
		t.Fatalf("CategoryTotals Food = %v, want 0", cats["Food"])
	}
}

func TestCategoryTotalsOrderIndependent(t *testing.T) {
	a := []Transaction{
		{Amount: 10, Kind: Expense, Category: "Food"},
		{Amount: 5, Kind: Expense, Category: "Travel"},
		{Amount: 2, Kind: Expense, Category: "Food"},
	}
	b := []Transaction{a[2], a[0], a[1]}

	ca, cb := CategoryTotals(a), CategoryTotals(b)
	if len(ca) != len(cb) {
		t.Fatalf("totals differ in size: %v vs %v", ca, cb)
	}
	for name, amount := range ca {
		if cb[name] != amount {
			t.Fatalf("totals differ for %s: %v vs %v", name, amount, cb[name])
		}
	}
}

func TestCategoryBreakdownDeterministic(t *testing.T) {
	txs := []Transaction{
		{Amount: 10, Kind: Expense, Category: "Food"},
		{Amount: 10, Kind: Expense, Category: "Bills"},
		{Amount: 25, Kind: Expense, Category: "Travel"},
		{Amount: 100, Kind: Income, Category: "Salary"},
	}
	got := CategoryBreakdown(txs)
	want := []CategoryTotal{
		{Name: "Travel", Amount: 25},
		{Name: "Bills", Amount: 10},
		{Name: "Food", Amount: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("breakdown = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("breakdown[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
