package engine

import (
	"testing"

	"github.com/spacecargo/stowage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preloadedSession(t *testing.T) *Session {
	t.Helper()
	return newTestSession(t, nil, []model.ContainerInput{
		{
			ID:   "c1",
			Zone: "A",
			Dims: model.Dims{W: 4, D: 4, H: 4},
			PreloadedItems: []model.PreloadedItem{
				{ID: "x", Position: model.PositionAt(0, 2, 0, model.Dims{W: 2, D: 2, H: 2})},
				{ID: "y", Position: model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})},
			},
		},
	})
}

// S5 — retrieval blocking.
func TestAnalyze_S5_RetrievalBlocking(t *testing.T) {
	session := preloadedSession(t)
	session.Items["x"] = model.Item{ID: "x", Name: "X", ContainerID: "c1", Position: ptr(model.PositionAt(0, 2, 0, model.Dims{W: 2, D: 2, H: 2}))}
	session.Items["y"] = model.Item{ID: "y", Name: "Y", ContainerID: "c1", Position: ptr(model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2}))}

	plan, err := Analyze(session, "x")
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, model.ActionRemove, plan[0].Action)
	assert.Equal(t, "y", plan[0].ItemID)
	assert.Equal(t, model.ActionRetrieve, plan[1].Action)
	assert.Equal(t, "x", plan[1].ItemID)
	assert.Equal(t, model.ActionPlaceBack, plan[2].Action)
	assert.Equal(t, "y", plan[2].ItemID)
	assert.Equal(t, []int{1, 2, 3}, []int{plan[0].Step, plan[1].Step, plan[2].Step})
}

// S6 — flush retrieval.
func TestAnalyze_S6_FlushRetrievalIsEmpty(t *testing.T) {
	session := preloadedSession(t)
	session.Items["y"] = model.Item{ID: "y", Name: "Y", ContainerID: "c1", Position: ptr(model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2}))}

	plan, err := Analyze(session, "y")
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestAnalyze_RetrievalMinimality(t *testing.T) {
	// A third item off to the side, outside the forward prism, must never appear.
	session := newTestSession(t, nil, []model.ContainerInput{
		{
			ID:   "c1",
			Zone: "A",
			Dims: model.Dims{W: 4, D: 4, H: 4},
			PreloadedItems: []model.PreloadedItem{
				{ID: "target", Position: model.PositionAt(0, 2, 0, model.Dims{W: 2, D: 2, H: 2})},
				{ID: "blocker", Position: model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2})},
				{ID: "sideways", Position: model.PositionAt(2, 0, 0, model.Dims{W: 2, D: 2, H: 2})},
			},
		},
	})
	session.Items["target"] = model.Item{ID: "target", ContainerID: "c1", Position: ptr(model.PositionAt(0, 2, 0, model.Dims{W: 2, D: 2, H: 2}))}
	session.Items["blocker"] = model.Item{ID: "blocker", ContainerID: "c1", Position: ptr(model.PositionAt(0, 0, 0, model.Dims{W: 2, D: 2, H: 2}))}
	session.Items["sideways"] = model.Item{ID: "sideways", ContainerID: "c1", Position: ptr(model.PositionAt(2, 0, 0, model.Dims{W: 2, D: 2, H: 2}))}

	plan, err := Analyze(session, "target")
	require.NoError(t, err)
	for _, step := range plan {
		assert.NotEqual(t, "sideways", step.ItemID)
	}
}

func TestAnalyze_UnknownItem(t *testing.T) {
	session := preloadedSession(t)
	_, err := Analyze(session, "nope")
	require.Error(t, err)
	var me *model.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, model.ErrUnknownItem, me.Kind)
}

func ptr(p model.Position) *model.Position { return &p }
