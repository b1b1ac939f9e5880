// Package tax defines the closed catalog of Italian VAT rates used by
// the document engine.
//
// The catalog is fixed at startup and rates are shared by reference:
// documents never carry their own copy of a rate, only its percentage.
package tax

import (
	"github.com/mrossi-dev/gestionale/pkg/money"
	"github.com/shopspring/decimal"
)

// Rate is an immutable VAT rate. ExemptNature is set only for the 0%
// family and carries the legal nature code printed on fiscal documents.
type Rate struct {
	Percentage   decimal.Decimal
	Code         string
	Description  string
	ExemptNature string
}

// Tax computes the rounded tax amount for a net base. Non-positive
// bases and the 0% rate yield exactly zero.
func (r Rate) Tax(net decimal.Decimal) decimal.Decimal {
	if net.Sign() <= 0 || r.Percentage.IsZero() {
		return decimal.Zero
	}
	return money.Round2(net.Mul(money.PercentMultiplier(r.Percentage)))
}

// Gross returns net plus the computed tax.
func (r Rate) Gross(net decimal.Decimal) decimal.Decimal {
	if net.Sign() <= 0 {
		return decimal.Zero
	}
	return net.Add(r.Tax(net))
}

// Exempt reports whether the rate belongs to the exempt family.
func (r Rate) Exempt() bool {
	return r.ExemptNature != ""
}
