package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.False(t, StatusIssued.Editable())

	assert.True(t, StatusDraft.Deletable())
	assert.True(t, StatusCancelled.Deletable())
	assert.False(t, StatusIssued.Deletable())
	assert.False(t, StatusPaid.Deletable())

	assert.False(t, StatusDraft.Printable())
	assert.True(t, StatusIssued.Printable())
	assert.True(t, StatusPaid.Printable())
	assert.False(t, StatusCancelled.Printable())

	assert.True(t, StatusIssued.Sendable())
	assert.True(t, StatusPrinted.Sendable())
	assert.False(t, StatusSent.Sendable())

	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPaid.Terminal())
}

func TestStatusNaturalChain(t *testing.T) {
	assert.Equal(t, StatusIssued, StatusDraft.Next())
	assert.Equal(t, StatusPrinted, StatusIssued.Next())
	assert.Equal(t, StatusSent, StatusPrinted.Next())
	assert.Equal(t, StatusPaid, StatusSent.Next())
	assert.Equal(t, StatusPaid, StatusPaid.Next())
	assert.Equal(t, StatusCancelled, StatusCancelled.Next())
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusDraft.CanTransitionTo(StatusIssued))
	assert.False(t, StatusDraft.CanTransitionTo(StatusPrinted))
	assert.False(t, StatusDraft.CanTransitionTo(StatusDraft))

	// Any live state can be cancelled.
	for _, s := range []Status{StatusDraft, StatusIssued, StatusPrinted, StatusSent, StatusPaid} {
		assert.True(t, s.CanTransitionTo(StatusCancelled), "cancel from %s", s)
	}

	// Cancelled is a dead end, and Paid only reaches Cancelled.
	for _, target := range []Status{StatusDraft, StatusIssued, StatusPrinted, StatusSent, StatusPaid, StatusCancelled} {
		assert.False(t, StatusCancelled.CanTransitionTo(target), "from cancelled to %s", target)
	}
	assert.False(t, StatusPaid.CanTransitionTo(StatusIssued))
	assert.True(t, StatusPaid.CanTransitionTo(StatusCancelled))
}
