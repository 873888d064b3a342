package engine

import "github.com/spacecargo/stowage/internal/model"

// PlacedVolume returns the total voxel volume committed across a result's
// placements.
func PlacedVolume(result model.PlacementResult) int {
	total := 0
	for _, p := range result.Placements {
		total += p.Position.Volume()
	}
	return total
}

// UnplacedVolume returns the total voxel volume of items the planner
// could not place, looked up against the originating item set.
func UnplacedVolume(result model.PlacementResult, items map[string]model.Item) int {
	total := 0
	for _, id := range result.Unplaced {
		if it, ok := items[id]; ok {
			total += it.Volume()
		}
	}
	return total
}

// Efficiency returns the fraction (0..1) of requested volume the result
// placed, across both placed and unplaced items.
func Efficiency(result model.PlacementResult, items map[string]model.Item) float64 {
	placed := PlacedVolume(result)
	total := placed + UnplacedVolume(result, items)
	if total == 0 {
		return 0
	}
	return float64(placed) / float64(total)
}
