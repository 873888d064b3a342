package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_GeneratesIDWhenOmitted(t *testing.T) {
	it, err := NewItem(ItemInput{Name: "Food Packet", Dims: Dims{W: 1, D: 1, H: 1}, Priority: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
}

func TestNewItem_RejectsInvalidDimensions(t *testing.T) {
	_, err := NewItem(ItemInput{ID: "i1", Dims: Dims{W: 0, D: 1, H: 1}, Priority: 50})
	require.Error(t, err)
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrInvalidDimensions, me.Kind)
}

func TestNewItem_RejectsPriorityOutOfRange(t *testing.T) {
	_, err := NewItem(ItemInput{ID: "i1", Dims: Dims{W: 1, D: 1, H: 1}, Priority: 0})
	require.Error(t, err)
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrInvalidPriority, me.Kind)

	_, err = NewItem(ItemInput{ID: "i2", Dims: Dims{W: 1, D: 1, H: 1}, Priority: 101})
	require.Error(t, err)
}

func TestItem_VolumeMatchesDims(t *testing.T) {
	it, err := NewItem(ItemInput{ID: "i1", Dims: Dims{W: 2, D: 3, H: 4}, Priority: 50})
	require.NoError(t, err)
	assert.Equal(t, 24, it.Volume())
	assert.False(t, it.Placed())
}
