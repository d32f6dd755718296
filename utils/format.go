// utils/format.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is a [Start, End] window, End being the instant it was computed
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Symbolic range names accepted by GetDateRange
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

// GetDateRange resolves a symbolic range name against the current wall clock.
// "today" truncates to local midnight; the others subtract the calendar unit.
func GetDateRange(name string) DateRange {
	now := time.Now()
	return getDateRangeAt(name, now)
}

func getDateRangeAt(name string, now time.Time) DateRange {
	start := now

	switch name {
	case RangeToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeMonth:
		start = now.AddDate(0, -1, 0)
	case RangeYear:
		start = now.AddDate(-1, 0, 0)
	}

	return DateRange{Start: start, End: now}
}

// StartOfMonth returns the first instant of the month containing t
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// FormatCurrency renders an amount in Ghana cedis, en-GH style: GH₵1,234.56
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart := whole[:len(whole)-3]
	fracPart := whole[len(whole)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	formatted := "GH₵" + strings.Join(groups, ",") + "." + fracPart
	if negative {
		return "-" + formatted
	}
	return formatted
}
