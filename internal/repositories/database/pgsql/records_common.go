package pgsql

import (
	"database/sql"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

func toNullFrequency(r domain.Recurrence) sql.NullString {
	if !r.IsRecurring || r.Frequency == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(r.Frequency), Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toDomainRecurrence(isRecurring bool, freq sql.NullString, last sql.NullTime) domain.Recurrence {
	r := domain.Recurrence{IsRecurring: isRecurring}
	if freq.Valid {
		r.Frequency = domain.Frequency(freq.String)
	}
	if last.Valid {
		t := last.Time
		r.LastRecurredAt = &t
	}
	return r
}
