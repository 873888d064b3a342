package engine

import (
	"testing"

	"github.com/spacecargo/stowage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_PlaceAndIsRegionEmpty(t *testing.T) {
	g := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	pos := model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})

	assert.True(t, g.IsRegionEmpty(pos))
	require.True(t, g.PlaceItem("i1", 8, pos))
	assert.False(t, g.IsRegionEmpty(pos))
	assert.Equal(t, 8, g.OccupiedVolume())
}

func TestGrid_PlaceItem_RejectsOverlap(t *testing.T) {
	g := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	pos := model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})
	require.True(t, g.PlaceItem("i1", 8, pos))

	overlapping := model.PositionAt(1, 1, 1, model.Dims{W: 2, D: 2, H: 2})
	assert.False(t, g.PlaceItem("i2", 8, overlapping))
	assert.Equal(t, 8, g.OccupiedVolume(), "failed placement must not mutate occupied volume")
}

func TestGrid_PlaceItem_RejectsVolumeMismatch(t *testing.T) {
	g := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	pos := model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})
	assert.False(t, g.PlaceItem("i1", 999, pos))
}

func TestGrid_PlaceItem_RejectsOutOfBounds(t *testing.T) {
	g := NewGrid(model.Dims{W: 4, D: 4, H: 4}, DefaultGridConfig())
	pos := model.PositionAt(3, 0, 0, model.Dims{W: 2, D: 2, H: 2})
	assert.False(t, g.PlaceItem("i1", 8, pos))
}

func TestGrid_RemoveItem_IsReversible(t *testing.T) {
	g := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	pos := model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})
	require.True(t, g.PlaceItem("i1", 8, pos))

	require.True(t, g.RemoveItem("i1"))
	assert.Equal(t, 0, g.OccupiedVolume())
	assert.True(t, g.IsRegionEmpty(pos))
	assert.False(t, g.RemoveItem("i1"), "removing an unknown id returns false")
}

func TestGrid_FindBestFit_PrefersLowestZThenXThenY(t *testing.T) {
	g := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	pos, found, _ := g.FindBestFit(model.Dims{W: 2, D: 2, H: 2})
	require.True(t, found)
	assert.Equal(t, model.Point{X: 0, Y: 0, Z: 0}, pos.Start)
}

func TestGrid_FindBestFit_SkipsOccupiedRegion(t *testing.T) {
	g := NewGrid(model.Dims{W: 4, D: 4, H: 4}, DefaultGridConfig())
	require.True(t, g.PlaceItem("i1", 64, model.PositionAt(0, 0, 0, model.Dims{W: 4, D: 4, H: 4})))

	_, found, _ := g.FindBestFit(model.Dims{W: 1, D: 1, H: 1})
	assert.False(t, found)
}

func TestGrid_FindBestFit_UsesOrientationToFit(t *testing.T) {
	// Container (10,10,2); item (2,10,10) only fits as (10,10,2).
	g := NewGrid(model.Dims{W: 10, D: 10, H: 2}, DefaultGridConfig())
	pos, found, _ := g.FindBestFit(model.Dims{W: 2, D: 10, H: 10})
	require.True(t, found)
	assert.Equal(t, model.Dims{W: 10, D: 10, H: 2}, pos.Dims())
}

func TestGrid_SparseAndDenseAgreeOnOccupancy(t *testing.T) {
	dense := NewGrid(model.Dims{W: 10, D: 10, H: 10}, DefaultGridConfig())
	sparse := NewGrid(model.Dims{W: 200, D: 200, H: 200}, DefaultGridConfig())
	require.False(t, dense.Sparse())
	require.True(t, sparse.Sparse())

	pos := model.PositionAt(1, 1, 1, model.Dims{W: 3, D: 3, H: 3})
	require.True(t, dense.PlaceItem("i1", 27, pos))
	require.True(t, sparse.PlaceItem("i1", 27, pos))

	overlap := model.PositionAt(2, 2, 2, model.Dims{W: 2, D: 2, H: 2})
	assert.Equal(t, dense.IsRegionEmpty(overlap), sparse.IsRegionEmpty(overlap))
}
