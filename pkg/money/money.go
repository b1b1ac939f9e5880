// Package money holds the decimal arithmetic conventions shared by the
// document calculation engine. Monetary amounts are rounded half-up to
// two decimal places; percentage multipliers keep four decimal places,
// matching the precision used on historical documents.
package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// SettleThreshold is the residual below which an installment counts
	// as fully paid.
	SettleThreshold = decimal.New(1, -2) // 0.01
)

// Round2 rounds half-up to two decimal places. decimal.Round rounds
// half away from zero, which is equivalent to half-up for the
// non-negative amounts this engine produces.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentMultiplier converts a percentage (22) into a multiplier (0.22)
// at four decimal places.
func PercentMultiplier(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred).Round(4)
}

// ApplyDiscount reduces amount by pct percent without rounding the
// result. A zero percentage returns the amount unchanged.
func ApplyDiscount(amount, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return amount
	}
	return amount.Sub(amount.Mul(PercentMultiplier(pct)))
}
