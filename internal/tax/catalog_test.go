package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()

	r := c.ByPercentage(decimal.NewFromInt(10))
	assert.Equal(t, "10%", r.Code)
	assert.False(t, r.Exempt())

	zero := c.ByPercentage(decimal.Zero)
	assert.Equal(t, "N1", zero.ExemptNature)
	assert.True(t, zero.Exempt())

	// Unknown percentages fall back to the ordinary rate.
	fallback := c.ByPercentage(decimal.NewFromInt(21))
	assert.Equal(t, "22%", fallback.Code)
}

func TestRateTax(t *testing.T) {
	c := NewCatalog()
	ordinary := c.Ordinary()

	net := decimal.RequireFromString("90.00")
	require.Equal(t, "19.80", ordinary.Tax(net).StringFixed(2))
	require.Equal(t, "109.80", ordinary.Gross(net).StringFixed(2))

	zero := c.ByPercentage(decimal.Zero)
	assert.True(t, zero.Tax(net).IsZero())

	// Rounding is half-up on the tax amount itself: 22% of 10.25 is
	// 2.255, which rounds to 2.26.
	assert.Equal(t, "2.26", ordinary.Tax(decimal.RequireFromString("10.25")).StringFixed(2))

	assert.True(t, ordinary.Tax(decimal.Zero).IsZero())
	assert.True(t, ordinary.Tax(decimal.NewFromInt(-5)).IsZero())
}
