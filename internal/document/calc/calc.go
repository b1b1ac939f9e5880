// Package calc implements the document calculation engine: per-line
// amounts, per-rate tax summaries and document totals.
//
// Every function here is PURE:
// - No side effects beyond the aggregate passed in
// - No DB access
// - Fully deterministic
package calc

import (
	"sort"

	"github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/mrossi-dev/gestionale/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	minQuantity = decimal.New(1, -3) // 0.001
	maxDiscount = decimal.NewFromInt(100)
)

// ComputeLine recomputes the derived amounts of one line.
//
// The discounted base cascades through discount1, discount2, discount3
// in that fixed order; cascading discounts do not commute once
// intermediate precision is involved. Only the final net is rounded to
// two decimals, then the tax amount is rounded independently.
// Gross is exactly net + tax.
func ComputeLine(line *domain.Line) error {
	if err := validateLine(line); err != nil {
		return err
	}

	base := line.UnitPrice.Mul(line.Quantity)
	base = money.ApplyDiscount(base, line.Discount1)
	base = money.ApplyDiscount(base, line.Discount2)
	base = money.ApplyDiscount(base, line.Discount3)

	line.NetAmount = money.Round2(base)

	if line.TaxRatePercent.Sign() > 0 {
		line.TaxAmount = money.Round2(line.NetAmount.Mul(money.PercentMultiplier(line.TaxRatePercent)))
	} else {
		line.TaxAmount = decimal.Zero
	}

	line.GrossAmount = line.NetAmount.Add(line.TaxAmount)
	return nil
}

func validateLine(line *domain.Line) error {
	if line.Quantity.LessThan(minQuantity) {
		return domain.NewValidationError("quantity", "must be at least 0.001")
	}
	if line.UnitPrice.Sign() < 0 {
		return domain.NewValidationError("unit_price", "must not be negative")
	}
	for field, d := range map[string]decimal.Decimal{
		"discount1": line.Discount1,
		"discount2": line.Discount2,
		"discount3": line.Discount3,
	} {
		if d.Sign() < 0 || d.GreaterThan(maxDiscount) {
			return domain.NewValidationError(field, "must be between 0 and 100")
		}
	}
	if line.TaxRatePercent.Sign() < 0 || line.TaxRatePercent.GreaterThan(maxDiscount) {
		return domain.NewValidationError("tax_rate_percent", "must be between 0 and 100")
	}
	return nil
}

// Summarize groups computed lines by tax rate and produces one summary
// row per distinct rate, ordered by ascending percentage. Rates with no
// lines produce no row.
//
// Subtotals are sums of the already-rounded per-line amounts, NOT
// re-derived from net subtotal times rate. Summing rounded amounts
// avoids cumulative drift against the line values and keeps new
// documents bit-compatible with historical ones, at the cost of the
// per-rate tax subtotal not being exactly net times percentage.
func Summarize(lines []domain.Line) []domain.TaxSummary {
	byRate := make(map[string]*domain.TaxSummary)
	order := make([]string, 0)

	for i := range lines {
		line := &lines[i]
		key := line.TaxRatePercent.StringFixed(2)
		row, ok := byRate[key]
		if !ok {
			row = &domain.TaxSummary{
				TaxRatePercent: line.TaxRatePercent,
				ExemptNature:   line.ExemptNature,
				NetSubtotal:    decimal.Zero,
				TaxSubtotal:    decimal.Zero,
			}
			byRate[key] = row
			order = append(order, key)
		}
		row.NetSubtotal = row.NetSubtotal.Add(line.NetAmount)
		row.TaxSubtotal = row.TaxSubtotal.Add(line.TaxAmount)
	}

	out := make([]domain.TaxSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byRate[key])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TaxRatePercent.LessThan(out[j].TaxRatePercent)
	})
	return out
}

// Assemble recomputes every line, regenerates the tax summaries
// wholesale and derives the document totals. It must run after every
// line mutation, before the document is persisted.
//
// An empty line set zeroes all totals and clears the summaries.
func Assemble(doc *domain.Document) error {
	if len(doc.Lines) == 0 {
		doc.Summaries = nil
		doc.TotalNet = decimal.Zero
		doc.TotalTax = decimal.Zero
		doc.TotalGross = decimal.Zero
		return nil
	}

	totalNet := decimal.Zero
	totalTax := decimal.Zero
	for i := range doc.Lines {
		if err := ComputeLine(&doc.Lines[i]); err != nil {
			return err
		}
		totalNet = totalNet.Add(doc.Lines[i].NetAmount)
		totalTax = totalTax.Add(doc.Lines[i].TaxAmount)
	}

	doc.Summaries = Summarize(doc.Lines)
	doc.TotalNet = totalNet
	doc.TotalTax = totalTax
	doc.TotalGross = totalNet.Add(totalTax).Sub(doc.WithholdingAmount)
	return nil
}
