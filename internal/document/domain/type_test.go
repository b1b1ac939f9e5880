package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	parsed, err := ParseType("INVOICE")
	require.NoError(t, err)
	assert.Equal(t, TypeInvoice, parsed)

	_, err = ParseType("FATTURA")
	assert.Error(t, err)
}

func TestTypeTable(t *testing.T) {
	cases := []struct {
		docType      Type
		code         string
		fiscal       bool
		installments bool
	}{
		{TypeQuote, "PV", false, false},
		{TypeOrder, "OR", false, false},
		{TypeDeliveryNote, "DDT", false, false},
		{TypeInvoice, "FT", true, true},
		{TypeElectronicInvoice, "FE", true, true},
		{TypeCreditNote, "NC", true, false},
		{TypeDebitNote, "ND", true, true},
		{TypeReceipt, "RC", true, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.docType.Code())
		assert.Equal(t, tc.fiscal, tc.docType.Fiscal(), "%s fiscal", tc.docType)
		assert.Equal(t, tc.installments, tc.docType.GeneratesInstallments(), "%s installments", tc.docType)
	}
}

func TestInstallmentLifecycleHelpers(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	inst := Installment{
		Amount:     decimal.RequireFromString("100.00"),
		AmountPaid: decimal.RequireFromString("40.00"),
		DueDate:    now.AddDate(0, 0, -1),
	}
	assert.Equal(t, "60.00", inst.Residual().StringFixed(2))
	assert.True(t, inst.Overdue(now))
	assert.True(t, inst.DueWithin(now, 7))

	inst.Settle(now)
	assert.True(t, inst.Settled)
	require.NotNil(t, inst.SettledAt)
	assert.False(t, inst.Overdue(now))
	assert.False(t, inst.DueWithin(now, 7))

	inst.Reopen()
	assert.False(t, inst.Settled)
	assert.Nil(t, inst.SettledAt)
	assert.True(t, inst.Overdue(now))

	future := Installment{
		Amount:  decimal.RequireFromString("50.00"),
		DueDate: now.AddDate(0, 0, 10),
	}
	assert.False(t, future.Overdue(now))
	assert.False(t, future.DueWithin(now, 7))
	assert.True(t, future.DueWithin(now, 15))
}
