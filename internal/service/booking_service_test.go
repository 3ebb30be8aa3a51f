package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines_FoldsDuplicates(t *testing.T) {
	ids, merged, err := mergeLines([]BookingLine{
		{TicketTypeID: 3, Quantity: 2},
		{TicketTypeID: 1, Quantity: 1},
		{TicketTypeID: 3, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1}, ids)
	assert.Equal(t, map[uint]int{3: 3, 1: 1}, merged)
}

func TestMergeLines_EmptySelection(t *testing.T) {
	_, _, err := mergeLines(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestMergeLines_AllNonPositive(t *testing.T) {
	_, _, err := mergeLines([]BookingLine{
		{TicketTypeID: 1, Quantity: 0},
		{TicketTypeID: 2, Quantity: -3},
	})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestMergeLines_MixedNegativeQuantity(t *testing.T) {
	_, _, err := mergeLines([]BookingLine{
		{TicketTypeID: 1, Quantity: 2},
		{TicketTypeID: 2, Quantity: -1},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
