package engine

import (
	"github.com/spacecargo/stowage/internal/model"
)

// Session owns one Grid per container plus the checked item/container
// entities for the duration of a planning or retrieval call. No grid it
// owns is ever observed from outside the session.
type Session struct {
	Items      map[string]model.Item
	Containers map[string]model.Container
	Grids      map[string]*Grid
}

// NewSession converts and validates items and containers, and builds one
// grid per container with its preloaded items already placed. gridConfig
// tunes every grid's dense/sparse threshold and fit-search budget.
func NewSession(itemInputs []model.ItemInput, containerInputs []model.ContainerInput, gridConfig GridConfig) (*Session, error) {
	s := &Session{
		Items:      make(map[string]model.Item, len(itemInputs)),
		Containers: make(map[string]model.Container, len(containerInputs)),
		Grids:      make(map[string]*Grid, len(containerInputs)),
	}

	for _, in := range itemInputs {
		it, err := model.NewItem(in)
		if err != nil {
			return nil, err
		}
		s.Items[it.ID] = it
	}

	for _, in := range containerInputs {
		c, err := model.NewContainer(in)
		if err != nil {
			return nil, err
		}
		grid := NewGrid(c.Dims, gridConfig)
		for _, pre := range c.PreloadedItems {
			if !grid.PlaceItem(pre.ID, pre.Position.Volume(), pre.Position) {
				return nil, &model.Error{Kind: model.ErrOccupied, ItemID: pre.ID, ContainerID: c.ID, Message: "preloaded items overlap"}
			}
			pos := pre.Position
			it, known := s.Items[pre.ID]
			if !known {
				it = model.Item{ID: pre.ID, Dims: pos.Dims()}
			}
			it.ContainerID = c.ID
			it.Position = &pos
			s.Items[pre.ID] = it
		}
		s.Containers[c.ID] = c
		s.Grids[c.ID] = grid
	}

	return s, nil
}

// Clone deep-copies every grid (and the item/container maps, which are
// value types) so a what-if scenario can mutate its own copy without
// disturbing the session it was cloned from. Used by ComparePlans.
func (s *Session) Clone() *Session {
	clone := &Session{
		Items:      make(map[string]model.Item, len(s.Items)),
		Containers: make(map[string]model.Container, len(s.Containers)),
		Grids:      make(map[string]*Grid, len(s.Grids)),
	}
	for id, it := range s.Items {
		clone.Items[id] = it
	}
	for id, c := range s.Containers {
		clone.Containers[id] = c
	}
	for id, g := range s.Grids {
		clone.Grids[id] = g.clone()
	}
	return clone
}

// clone deep-copies a grid's occupancy so the copy shares no mutable
// state with the original.
func (g *Grid) clone() *Grid {
	cp := &Grid{dims: g.dims, sparse: g.sparse, cfg: g.cfg, items: make(map[string]itemRecord, len(g.items))}
	for id, rec := range g.items {
		cp.items[id] = rec
	}
	if !g.sparse {
		cp.dense = make([][][]string, g.dims.W)
		for x := range cp.dense {
			cp.dense[x] = make([][]string, g.dims.D)
			for y := range cp.dense[x] {
				cp.dense[x][y] = make([]string, g.dims.H)
				copy(cp.dense[x][y], g.dense[x][y])
			}
		}
	}
	return cp
}
