// Package money centralizes monetary arithmetic for derived fields.
//
// All derived monetary values are rounded half-up to two fractional digits at
// the moment they are assigned; intermediate sums stay unrounded.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two fractional digits, half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes a line total from a unit price and quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return Round2(price.Mul(decimal.NewFromInt(int64(quantity))))
}

// TaxAmount computes the tax owed on a subtotal at the given percentage.
func TaxAmount(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(taxPercent).Div(hundred))
}

// ChangeDue returns the change owed to the customer, never negative.
func ChangeDue(amountPaid, grandTotal decimal.Decimal) decimal.Decimal {
	change := amountPaid.Sub(grandTotal)
	if change.IsNegative() {
		return decimal.Zero
	}
	return Round2(change)
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// IsNegative reports whether d is strictly less than zero.
func IsNegative(d decimal.Decimal) bool {
	return d.LessThan(decimal.Zero)
}
