package engine

import "github.com/spacecargo/stowage/internal/model"

// Analyze returns the ordered retrieval steps for a placed item: which
// items must be removed to clear a path through the container's open
// face (y=0), the retrieval of the target itself, then the blocking
// items placed back in the same order. The grid is never mutated.
func Analyze(session *Session, itemID string) (model.RetrievalPlan, error) {
	item, ok := session.Items[itemID]
	if !ok {
		return nil, &model.Error{Kind: model.ErrUnknownItem, ItemID: itemID, Message: "no such item in session"}
	}
	if !item.Placed() {
		return nil, &model.Error{Kind: model.ErrUnknownItem, ItemID: itemID, Message: "item is not currently placed"}
	}
	grid, ok := session.Grids[item.ContainerID]
	if !ok {
		return nil, &model.Error{Kind: model.ErrUnknownContainer, ContainerID: item.ContainerID, Message: "no such container in session"}
	}

	pos := *item.Position
	if pos.Start.Y == 0 {
		return model.RetrievalPlan{}, nil
	}

	prism := model.Position{
		Start: model.Point{X: pos.Start.X, Y: 0, Z: pos.Start.Z},
		End:   model.Point{X: pos.End.X, Y: pos.Start.Y, Z: pos.End.Z},
	}
	blocking := grid.itemsOverlapping(prism, itemID)

	plan := make(model.RetrievalPlan, 0, len(blocking)*2+1)
	step := 0
	nextStep := func(action model.RetrievalAction, id string) {
		step++
		name := id
		if it, ok := session.Items[id]; ok {
			name = it.Name
		}
		plan = append(plan, model.RetrievalStep{Step: step, Action: action, ItemID: id, ItemName: name})
	}

	for _, id := range blocking {
		nextStep(model.ActionRemove, id)
	}
	nextStep(model.ActionRetrieve, itemID)
	for _, id := range blocking {
		nextStep(model.ActionPlaceBack, id)
	}
	return plan, nil
}
