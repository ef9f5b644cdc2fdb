package core

import (
	"fmt"
	"time"
)

// RangeMode selects the temporal window a listing is restricted to.
type RangeMode string

const (
	RangeAll     RangeMode = "all"
	RangeWeekly  RangeMode = "weekly"
	RangeMonthly RangeMode = "monthly"
	RangeYearly  RangeMode = "yearly"
	RangeDay     RangeMode = "day"
)

// weeklyWindow is the rolling window used by RangeWeekly. The boundary is
// inclusive: an entry exactly 7x24h old still matches. Entries dated in the
// future also pass the elapsed-time check, matching the observed rolling
// window comparison now - date <= 7d.
const weeklyWindow = 7 * 24 * time.Hour

// Filter is a temporal predicate over transactions. Day is only consulted
// when Mode is RangeDay. The evaluation instant is injected so temporal
// logic stays testable with fixed clocks.
type Filter struct {
	Mode RangeMode
	Day  time.Time
}

// ParseRangeMode maps a caller-supplied mode string to a RangeMode.
func ParseRangeMode(s string) (RangeMode, error) {
	switch RangeMode(s) {
	case RangeAll, RangeWeekly, RangeMonthly, RangeYearly, RangeDay:
		return RangeMode(s), nil
	case "":
		return RangeAll, nil
	}
	return "", fmt.Errorf("unknown range mode %q", s)
}

// Apply returns the subset of txs matching the filter at instant now.
// Input order is preserved and the input is never mutated; ordering for
// display is applied downstream by GroupByDay.
func (f Filter) Apply(txs []Transaction, now time.Time) []Transaction {
	if f.Mode == RangeAll || f.Mode == "" {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.matches(NormalizeDate(t.Date, now), now) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) matches(d, now time.Time) bool {
	switch f.Mode {
	case RangeWeekly:
		return now.Sub(d) <= weeklyWindow
	case RangeMonthly:
		return d.Year() == now.Year() && d.Month() == now.Month()
	case RangeYearly:
		return d.Year() == now.Year()
	case RangeDay:
		return SameDay(d, f.Day)
	}
	return true
}
