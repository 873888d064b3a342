package model

// Placement records where one item ended up.
type Placement struct {
	ItemID      string   `json:"item_id"`
	ContainerID string   `json:"container_id"`
	Position    Position `json:"position"`
}

// RearrangementKind classifies an advice entry emitted by the planner.
type RearrangementKind string

// Expansion is currently the only rearrangement kind the planner emits:
// the engine never proposes moving already-placed items.
const Expansion RearrangementKind = "expansion"

// Rearrangement is a piece of advice the planner attaches to a result,
// never an instruction the core itself carries out.
type Rearrangement struct {
	Type    RearrangementKind `json:"type"`
	Message string            `json:"message"`
	Items   []string          `json:"items"`
}

// PlacementResult is the planner's output for a batch of items.
type PlacementResult struct {
	Success        bool            `json:"success"`
	Placements     []Placement     `json:"placements"`
	Rearrangements []Rearrangement `json:"rearrangements"`
	Unplaced       []string        `json:"unplaced"`

	// BudgetExceeded lists item ids for which find_best_fit exhausted its
	// position budget before finding any candidate. These items also
	// appear in Unplaced; this field is a diagnostic, not a second outcome.
	BudgetExceeded []string `json:"budget_exceeded,omitempty"`
}

// RetrievalAction is one step of a RetrievalPlan.
type RetrievalAction string

const (
	ActionRemove    RetrievalAction = "remove"
	ActionRetrieve  RetrievalAction = "retrieve"
	ActionPlaceBack RetrievalAction = "placeBack"
)

// RetrievalStep is one 1-based, contiguous step of a retrieval plan.
type RetrievalStep struct {
	Step     int             `json:"step"`
	Action   RetrievalAction `json:"action"`
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
}

// RetrievalPlan is the ordered step list returned by the retrieval analyzer.
type RetrievalPlan []RetrievalStep
