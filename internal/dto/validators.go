package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the decimal-aware binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("decimal_gt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_gte0", decimalNotNegative)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func decimalNotNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
