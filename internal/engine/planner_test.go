package engine

import (
	"testing"

	"github.com/spacecargo/stowage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, items []model.ItemInput, containers []model.ContainerInput) *Session {
	t.Helper()
	s, err := NewSession(items, containers, DefaultGridConfig())
	require.NoError(t, err)
	return s
}

func itemList(s *Session, ids ...string) []model.Item {
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.Items[id])
	}
	return items
}

// S1 — single fit.
func TestPlan_S1_SingleFit(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{{ID: "i1", Dims: model.Dims{W: 10, D: 10, H: 10}, Priority: 50}},
		[]model.ContainerInput{{ID: "c1", Zone: "A", Dims: model.Dims{W: 10, D: 10, H: 10}}},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "i1"))

	require.True(t, result.Success)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, model.Point{X: 0, Y: 0, Z: 0}, result.Placements[0].Position.Start)
	assert.Equal(t, model.Point{X: 10, Y: 10, Z: 10}, result.Placements[0].Position.End)
	assert.Empty(t, result.Unplaced)
}

// S2 — orientation: container (10,10,2), item (2,10,10) must rotate to fit.
func TestPlan_S2_Orientation(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{{ID: "i1", Dims: model.Dims{W: 2, D: 10, H: 10}, Priority: 50}},
		[]model.ContainerInput{{ID: "c1", Zone: "A", Dims: model.Dims{W: 10, D: 10, H: 2}}},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "i1"))

	require.True(t, result.Success)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, model.Dims{W: 10, D: 10, H: 2}, result.Placements[0].Position.Dims())
	assert.Equal(t, model.Point{X: 0, Y: 0, Z: 0}, result.Placements[0].Position.Start)
}

// S3 — preferred zone.
func TestPlan_S3_PreferredZone(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{{ID: "i1", Dims: model.Dims{W: 5, D: 5, H: 5}, Priority: 50, PreferredZone: "B"}},
		[]model.ContainerInput{
			{ID: "c1", Zone: "A", Dims: model.Dims{W: 5, D: 5, H: 5}},
			{ID: "c2", Zone: "B", Dims: model.Dims{W: 5, D: 5, H: 5}},
		},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "i1"))

	require.True(t, result.Success)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, "c2", result.Placements[0].ContainerID)
}

// S4 — priority order: only the higher-priority item fits.
func TestPlan_S4_PriorityOrder(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{
			{ID: "high", Dims: model.Dims{W: 2, D: 2, H: 2}, Priority: 90},
			{ID: "low", Dims: model.Dims{W: 2, D: 2, H: 2}, Priority: 50},
		},
		[]model.ContainerInput{{ID: "c1", Zone: "A", Dims: model.Dims{W: 2, D: 2, H: 2}}},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "high", "low"))

	assert.False(t, result.Success)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, "high", result.Placements[0].ItemID)
	assert.Equal(t, []string{"low"}, result.Unplaced)
}

func TestPlan_PriorityMonotonicity(t *testing.T) {
	// Both items fit individually but not simultaneously and share the same
	// (priority, volume) key; the stable ordering keeps input order, so the
	// first item is the one placed.
	session := newTestSession(t,
		[]model.ItemInput{
			{ID: "a", Dims: model.Dims{W: 3, D: 3, H: 3}, Priority: 80},
			{ID: "b", Dims: model.Dims{W: 3, D: 3, H: 3}, Priority: 80},
		},
		[]model.ContainerInput{{ID: "c1", Zone: "A", Dims: model.Dims{W: 3, D: 3, H: 3}}},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "a", "b"))

	require.Len(t, result.Placements, 1)
	assert.Equal(t, "a", result.Placements[0].ItemID, "equal priority/volume: first in input order wins ties via stable sort")
}

func TestPlan_ZonePreference_NeverFallsBackWhenPreferredFits(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{{ID: "i1", Dims: model.Dims{W: 2, D: 2, H: 2}, Priority: 50, PreferredZone: "A"}},
		[]model.ContainerInput{
			{ID: "c1", Zone: "A", Dims: model.Dims{W: 2, D: 2, H: 2}},
			{ID: "c2", Zone: "B", Dims: model.Dims{W: 10, D: 10, H: 10}},
		},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "i1"))

	require.Len(t, result.Placements, 1)
	assert.Equal(t, "c1", result.Placements[0].ContainerID)
}

func TestPlan_Conservation(t *testing.T) {
	session := newTestSession(t,
		[]model.ItemInput{
			{ID: "a", Dims: model.Dims{W: 2, D: 2, H: 2}, Priority: 90},
			{ID: "b", Dims: model.Dims{W: 3, D: 3, H: 3}, Priority: 80},
		},
		[]model.ContainerInput{{ID: "c1", Zone: "A", Dims: model.Dims{W: 10, D: 10, H: 10}}},
	)
	planner := NewPlanner(DefaultPlannerSettings())
	result := planner.Plan(session, itemList(session, "a", "b"))

	require.True(t, result.Success)
	assert.Equal(t, session.Containers["c1"].OccupiedVolume, PlacedVolume(result))
}
