// Package moneypkg provides exact decimal money handling for apps.
//
// Amounts travel through the app as strings and are only combined with
// decimal arithmetic, never with binary floating point.
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Parse converts an amount string to a decimal value.
func Parse(amount string) (decimal.Decimal, error) {
	return decimal.NewFromString(amount)
}

// IsPositive returns true if the amount parses and is strictly greater than zero.
func IsPositive(amount string) bool {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return false
	}

	return d.GreaterThan(decimal.Zero)
}

// IsNonNegative returns true if the amount parses and is zero or greater.
func IsNonNegative(amount string) bool {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return false
	}

	return !d.IsNegative()
}

// ValidAmount validates that a bound string field holds a positive decimal amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(string); ok {
		return IsPositive(amount)
	}

	return false
}
