package model

import "github.com/google/uuid"

// PreloadedItem places an item into a container at construction time,
// for replanning scenarios where some occupancy already exists. Its
// volume is derived from Position, not supplied separately: the box a
// preloaded item occupies is exactly what Position describes.
type PreloadedItem struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

// ContainerInput is the boundary record a caller supplies for one container.
type ContainerInput struct {
	ID             string          `json:"id"`
	Zone           string          `json:"zone"`
	Dims           Dims            `json:"dims"`
	PreloadedItems []PreloadedItem `json:"preloaded_items,omitempty"`
}

// Container is the checked, typed entity the engine operates on.
// OccupiedVolume is the core's only mutable field on this type; the
// engine keeps it consistent with its Grid's placements.
type Container struct {
	ID             string
	Zone           string
	Dims           Dims
	TotalVolume    int
	OccupiedVolume int
	PreloadedItems []PreloadedItem
}

// AvailableVolume returns the container's remaining capacity.
func (c Container) AvailableVolume() int {
	return c.TotalVolume - c.OccupiedVolume
}

// NewContainer converts and validates a ContainerInput into a checked Container.
func NewContainer(in ContainerInput) (Container, error) {
	if !in.Dims.Valid() {
		return Container{}, newErr(ErrInvalidDimensions, "", in.ID, "container dimensions must be strictly positive")
	}
	id := in.ID
	if id == "" {
		id = uuid.New().String()[:8]
	}
	var occupied int
	for _, pre := range in.PreloadedItems {
		if !pre.Position.WithinBounds(in.Dims) {
			return Container{}, newErr(ErrOutOfBounds, pre.ID, id, "preloaded item position does not fit inside container")
		}
		occupied += pre.Position.Volume()
	}
	return Container{
		ID:             id,
		Zone:           in.Zone,
		Dims:           in.Dims,
		TotalVolume:    in.Dims.Volume(),
		OccupiedVolume: occupied,
		PreloadedItems: in.PreloadedItems,
	}, nil
}
