package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, "10.01", Round2(decimal.RequireFromString("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", Round2(decimal.RequireFromString("10.004")).StringFixed(2))
	assert.Equal(t, "0.00", Round2(decimal.Zero).StringFixed(2))
}

func TestPercentMultiplier(t *testing.T) {
	assert.Equal(t, "0.22", PercentMultiplier(decimal.NewFromInt(22)).String())
	assert.Equal(t, "0.04", PercentMultiplier(decimal.NewFromInt(4)).String())
	assert.True(t, PercentMultiplier(decimal.Zero).IsZero())
}

func TestApplyDiscount(t *testing.T) {
	base := decimal.NewFromInt(100)
	assert.Equal(t, "90", ApplyDiscount(base, decimal.NewFromInt(10)).String())
	assert.Equal(t, "100", ApplyDiscount(base, decimal.Zero).String())
	assert.True(t, ApplyDiscount(base, decimal.NewFromInt(100)).IsZero())
}
