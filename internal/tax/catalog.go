package tax

import "github.com/shopspring/decimal"

// Catalog holds the standard Italian VAT rates, ordered by ascending
// percentage.
type Catalog struct {
	rates []Rate
}

// NewCatalog builds the standard rate table: 0% (exempt, nature N1),
// the reduced rates 4/5/10 and the 22% ordinary rate.
func NewCatalog() *Catalog {
	return &Catalog{rates: []Rate{
		{Percentage: decimal.NewFromInt(0), Code: "0%", Description: "Operazioni esenti o non soggette", ExemptNature: "N1"},
		{Percentage: decimal.NewFromInt(4), Code: "4%", Description: "Aliquota ridotta - beni di prima necessità"},
		{Percentage: decimal.NewFromInt(5), Code: "5%", Description: "Aliquota ridotta - beni specifici"},
		{Percentage: decimal.NewFromInt(10), Code: "10%", Description: "Aliquota ridotta - servizi turistici, alimentari"},
		{Percentage: decimal.NewFromInt(22), Code: "22%", Description: "Aliquota ordinaria"},
	}}
}

// Rates returns the catalog in ascending percentage order.
func (c *Catalog) Rates() []Rate {
	out := make([]Rate, len(c.rates))
	copy(out, c.rates)
	return out
}

// ByPercentage looks a rate up by exact percentage. Unknown
// percentages fall back to the ordinary rate, as legacy documents did.
func (c *Catalog) ByPercentage(pct decimal.Decimal) Rate {
	for _, r := range c.rates {
		if r.Percentage.Equal(pct) {
			return r
		}
	}
	return c.Ordinary()
}

// Ordinary returns the 22% standard rate.
func (c *Catalog) Ordinary() Rate {
	return c.rates[len(c.rates)-1]
}
