package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDateRangeAt(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 45, 0, time.Local)

	t.Run("today truncates to midnight", func(t *testing.T) {
		r := getDateRangeAt(RangeToday, now)
		assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("week subtracts seven days", func(t *testing.T) {
		r := getDateRangeAt(RangeWeek, now)
		assert.Equal(t, now.AddDate(0, 0, -7), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("month subtracts one calendar month", func(t *testing.T) {
		r := getDateRangeAt(RangeMonth, now)
		assert.Equal(t, now.AddDate(0, -1, 0), r.Start)
	})

	t.Run("year subtracts one calendar year", func(t *testing.T) {
		r := getDateRangeAt(RangeYear, now)
		assert.Equal(t, now.AddDate(-1, 0, 0), r.Start)
	})

	t.Run("unknown range collapses to now", func(t *testing.T) {
		r := getDateRangeAt("fortnight", now)
		assert.Equal(t, now, r.Start)
		assert.Equal(t, now, r.End)
	})
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2025, time.July, 23, 18, 4, 5, 6, time.Local)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local), StartOfMonth(in))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "GH₵0.00"},
		{"small", 5.5, "GH₵5.50"},
		{"thousands grouping", 1234.56, "GH₵1,234.56"},
		{"millions grouping", 1234567.89, "GH₵1,234,567.89"},
		{"rounds to two decimals", 10.005, "GH₵10.01"},
		{"negative", -1234.5, "-GH₵1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}
