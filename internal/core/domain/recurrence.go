package domain

import "time"

// Frequency is how often a recurring income or expense repeats.
type Frequency string

const (
	Daily   Frequency = "Daily"
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
	Yearly  Frequency = "Yearly"
)

// At returns the n-th occurrence after anchor. Monthly and yearly steps
// are counted from anchor and clamp to the last day of a shorter month,
// so Jan 31 gives Feb 28 (or 29) and then Mar 31. Unknown frequencies
// return the zero time.
func (f Frequency) At(anchor time.Time, n int) time.Time {
	switch f {
	case Daily:
		return anchor.AddDate(0, 0, n)
	case Weekly:
		return anchor.AddDate(0, 0, 7*n)
	case Monthly:
		return addMonthsClamped(anchor, n)
	case Yearly:
		return addMonthsClamped(anchor, 12*n)
	}
	return time.Time{}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, day := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// Recurrence holds the scheduling fields shared by incomes and expenses.
type Recurrence struct {
	IsRecurring    bool       `json:"isRecurring"`
	Frequency      Frequency  `json:"frequency,omitempty"`
	LastRecurredAt *time.Time `json:"lastRecurredAt,omitempty"`
}

// NextDue returns the first occurrence of anchor's schedule after the last
// materialized one, together with its index for Frequency.At. Without a
// materialized occurrence it is the first step after anchor.
func (r Recurrence) NextDue(anchor time.Time) (time.Time, int) {
	n := 1
	due := r.Frequency.At(anchor, n)
	if r.LastRecurredAt == nil {
		return due, n
	}
	for !due.IsZero() && !due.After(*r.LastRecurredAt) {
		n++
		due = r.Frequency.At(anchor, n)
	}
	return due, n
}
