package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ReportTitleLayout renders the point-in-time the report was generated.
const ReportTitleLayout = "02 Jan 2006"

// FormatAmount renders an amount with exactly two decimal places and
// thousands grouping, prefixed by the currency symbol.
func FormatAmount(v float64, symbol string) string {
	return symbol + humanize.FormatFloat("#,###.##", v)
}

// ReportTitle is the snapshot heading for a report generated at now.
func ReportTitle(now time.Time) string {
	return "Ledger Report - " + now.Format(ReportTitleLayout)
}

// BuildReport renders the full ledger into a deterministic text report:
// a summary block, one section per calendar day (newest first) and a
// closing marker. Identical input collections produce byte-identical text
// apart from the generation-date title.
//
// An empty ledger returns ErrNoTransactions so the caller can react instead
// of sharing a hollow report.
func BuildReport(txs []Transaction, now time.Time, symbol string) (string, error) {
	if len(txs) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	title := ReportTitle(now)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	s := Summarize(txs)
	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  Total Income:  %s\n", FormatAmount(s.TotalIncome, symbol))
	fmt.Fprintf(&b, "  Total Expense: %s\n", FormatAmount(s.TotalExpense, symbol))
	fmt.Fprintf(&b, "  Balance:       %s\n", FormatAmount(s.Balance, symbol))
	fmt.Fprintf(&b, "  Transactions:  %d\n", s.Count)

	for _, g := range GroupByDay(txs, now) {
		b.WriteString("\n" + g.Label + "\n")
		for _, t := range g.Transactions {
			// Raw amounts are rendered as-is; an invalid stored value stays
			// visible here even though it contributes zero to the totals.
			fmt.Fprintf(&b, "  [%s] %s%s  %s\n",
				t.Kind, signFor(t.Kind), FormatAmount(t.Amount, symbol), t.Category)
			if notes := strings.TrimSpace(t.Notes); notes != "" {
				fmt.Fprintf(&b, "      note: %s\n", notes)
			}
		}
		fmt.Fprintf(&b, "  day income %s | day expense %s | day balance %s\n",
			FormatAmount(g.Income, symbol),
			FormatAmount(g.Expense, symbol),
			FormatAmount(g.Balance, symbol))
	}

	b.WriteString("\n-- end of report --\n")
	return b.String(), nil
}

func signFor(k Kind) string {
	if k == Income {
		return "+"
	}
	return "-"
}
