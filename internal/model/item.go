package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemInput is the boundary record a caller supplies for one cargo item.
type ItemInput struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Dims          Dims       `json:"dims"`
	Mass          float64    `json:"mass"`
	Priority      int        `json:"priority"` // 1..100
	Expiry        *time.Time `json:"expiry,omitempty"`
	UsageLimit    int        `json:"usage_limit"`
	UsageCount    int        `json:"usage_count"`
	PreferredZone string     `json:"preferred_zone"`
	IsWaste       bool       `json:"is_waste"`
	WasteReason   string     `json:"waste_reason,omitempty"`
}

// Item is the checked, typed entity the engine operates on. ContainerID
// and Position are the only fields the engine mutates, and only once the
// item is placed.
type Item struct {
	ID            string
	Name          string
	Dims          Dims
	Mass          float64
	Priority      int
	Expiry        *time.Time
	UsageLimit    int
	UsageCount    int
	PreferredZone string
	IsWaste       bool
	WasteReason   string

	ContainerID string
	Position    *Position
}

// Volume returns the item's original (orientation-independent) volume.
func (it Item) Volume() int {
	return it.Dims.Volume()
}

// Placed reports whether the item currently occupies a position.
func (it Item) Placed() bool {
	return it.Position != nil
}

// NewItem converts and validates an ItemInput into a checked Item. An id
// is generated when the input omits one, using an 8-character uuid prefix.
func NewItem(in ItemInput) (Item, error) {
	if !in.Dims.Valid() {
		return Item{}, newErr(ErrInvalidDimensions, in.ID, "", "item dimensions must be strictly positive")
	}
	if in.Priority < 1 || in.Priority > 100 {
		return Item{}, newErr(ErrInvalidPriority, in.ID, "", "priority must be in [1,100]")
	}
	id := in.ID
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return Item{
		ID:            id,
		Name:          in.Name,
		Dims:          in.Dims,
		Mass:          in.Mass,
		Priority:      in.Priority,
		Expiry:        in.Expiry,
		UsageLimit:    in.UsageLimit,
		UsageCount:    in.UsageCount,
		PreferredZone: in.PreferredZone,
		IsWaste:       in.IsWaste,
		WasteReason:   in.WasteReason,
	}, nil
}
