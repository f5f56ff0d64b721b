package domain

import (
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places the money columns store.
const AmountScale = 4

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

// ValidateAmount rejects amounts that are not positive or that carry more
// decimal places than can be stored without rounding.
func ValidateAmount(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return validationErr("%s must be greater than zero", field)
	}
	return validateScale(field, d)
}

func validateScale(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(AmountScale)) {
		return validationErr("%s must have at most %d decimal places", field, AmountScale)
	}
	return nil
}

func validateRecurrence(r Recurrence, allowed ...Frequency) error {
	if !r.IsRecurring {
		return nil
	}
	if r.Frequency == "" {
		return validationErr("frequency is required for recurring records")
	}
	for _, f := range allowed {
		if r.Frequency == f {
			return nil
		}
	}
	return validationErr("invalid frequency %q", r.Frequency)
}
