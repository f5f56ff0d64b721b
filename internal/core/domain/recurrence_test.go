package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFrequency_At(t *testing.T) {
	from := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		freq domain.Frequency
		n    int
		want time.Time
	}{
		{"daily", domain.Daily, 1, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)},
		{"weekly", domain.Weekly, 2, time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)},
		{"monthly clamps to leap february", domain.Monthly, 1, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)},
		{"monthly returns to the 31st", domain.Monthly, 2, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)},
		{"monthly clamps to april", domain.Monthly, 3, time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC)},
		{"monthly across a year", domain.Monthly, 13, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)},
		{"yearly", domain.Yearly, 1, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)},
		{"unknown", "Hourly", 1, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.freq.At(from, tt.n))
		})
	}
}

func TestFrequency_At_YearlyFromLeapDay(t *testing.T) {
	leap := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), domain.Yearly.At(leap, 1))
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), domain.Yearly.At(leap, 4))
}

func TestRecurrence_NextDue(t *testing.T) {
	anchor := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	r := domain.Recurrence{IsRecurring: true, Frequency: domain.Weekly}
	due, n := r.NextDue(anchor)
	assert.Equal(t, anchor.AddDate(0, 0, 7), due)
	assert.Equal(t, 1, n)

	last := anchor.AddDate(0, 0, 14)
	r.LastRecurredAt = &last
	due, n = r.NextDue(anchor)
	assert.Equal(t, anchor.AddDate(0, 0, 21), due)
	assert.Equal(t, 3, n)
}

func TestRecurrence_NextDue_MonthEnd(t *testing.T) {
	anchor := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	r := domain.Recurrence{IsRecurring: true, Frequency: domain.Monthly, LastRecurredAt: &feb}

	due, n := r.NextDue(anchor)

	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), due)
	assert.Equal(t, 2, n)
}

func TestIncome_ValidateRecurrence(t *testing.T) {
	inc := validIncome()
	inc.IsRecurring = true
	assert.Error(t, inc.Validate(), "frequency required")

	inc.Frequency = domain.Daily
	assert.Error(t, inc.Validate(), "daily not allowed for incomes")

	inc.Frequency = domain.Monthly
	assert.NoError(t, inc.Validate())
}
