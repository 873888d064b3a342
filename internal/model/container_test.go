package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_ComputesTotalVolume(t *testing.T) {
	c, err := NewContainer(ContainerInput{ID: "c1", Zone: "A", Dims: Dims{W: 10, D: 10, H: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1000, c.TotalVolume)
	assert.Equal(t, 1000, c.AvailableVolume())
}

func TestNewContainer_RejectsInvalidDimensions(t *testing.T) {
	_, err := NewContainer(ContainerInput{ID: "c1", Dims: Dims{W: -1, D: 1, H: 1}})
	require.Error(t, err)
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrInvalidDimensions, me.Kind)
}

func TestNewContainer_PreloadedItemsReduceAvailableVolume(t *testing.T) {
	c, err := NewContainer(ContainerInput{
		ID:   "c1",
		Dims: Dims{W: 10, D: 10, H: 10},
		PreloadedItems: []PreloadedItem{
			{ID: "pre1", Position: PositionAt(0, 0, 0, Dims{W: 2, D: 2, H: 2})},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, c.OccupiedVolume)
	assert.Equal(t, 992, c.AvailableVolume())
}

func TestNewContainer_RejectsOutOfBoundsPreload(t *testing.T) {
	_, err := NewContainer(ContainerInput{
		ID:   "c1",
		Dims: Dims{W: 2, D: 2, H: 2},
		PreloadedItems: []PreloadedItem{
			{ID: "pre1", Position: PositionAt(0, 0, 0, Dims{W: 4, D: 4, H: 4})},
		},
	})
	require.Error(t, err)
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrOutOfBounds, me.Kind)
}
