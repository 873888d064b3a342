package engine

import (
	"fmt"
	"sort"

	"github.com/spacecargo/stowage/internal/model"
)

// Algorithm selects the placement search strategy a Planner uses.
type Algorithm string

const (
	// AlgorithmFirstFit is the deterministic priority/volume-ordered
	// first-fit-decreasing algorithm. This is the default.
	AlgorithmFirstFit Algorithm = "first_fit"
	// AlgorithmGenetic evolves the scoring tie-break weights PlanGenetic
	// uses around the same deterministic item order and pass structure.
	AlgorithmGenetic Algorithm = "genetic"
)

// PlannerSettings configures a Planner run.
type PlannerSettings struct {
	Algorithm Algorithm
	Genetic   GeneticSettings

	// DefaultVerticalWeight and DefaultZonePenalty are the zone-scoring
	// tie-break weights first-fit uses directly, and that PlanGenetic
	// uses as its baseline candidate in the weight search.
	DefaultVerticalWeight int
	DefaultZonePenalty    int
}

// DefaultPlannerSettings returns the deterministic first-fit algorithm
// with the engine's built-in scoring weights.
func DefaultPlannerSettings() PlannerSettings {
	return PlannerSettings{
		Algorithm:             AlgorithmFirstFit,
		Genetic:               DefaultGeneticSettings(),
		DefaultVerticalWeight: 10,
		DefaultZonePenalty:    1000,
	}
}

// Planner orders items and assigns each a container and position.
type Planner struct {
	Settings PlannerSettings
}

// NewPlanner builds a Planner with the given settings.
func NewPlanner(settings PlannerSettings) *Planner {
	return &Planner{Settings: settings}
}

// zoneBucket is one zone's containers, ordered by their available volume
// at the start of planning, before any item is placed.
type zoneBucket struct {
	zone         string
	containerIDs []string
}

// Plan orders items, then places each in turn into session's grids,
// mutating session and returning the aggregate result. It never leaves a
// half-written placement: a candidate is only committed after
// find_best_fit and the occupancy check both succeed.
func (p *Planner) Plan(session *Session, items []model.Item) model.PlacementResult {
	baseline := zoneWeights{vertical: p.Settings.DefaultVerticalWeight, zonePenalty: p.Settings.DefaultZonePenalty}
	if p.Settings.Algorithm == AlgorithmGenetic {
		return PlanGenetic(session, items, p.Settings.Genetic, baseline)
	}
	return planFirstFit(session, items, baseline)
}

// zoneWeights parameterizes the planner's scoring tie-break. First-fit
// always scores with PlannerSettings' configured vertical weight and
// zone penalty; PlanGenetic searches this small space around that same
// baseline instead of reordering items, which would violate priority
// monotonicity.
type zoneWeights struct {
	vertical    int
	zonePenalty int
}

func planFirstFit(session *Session, items []model.Item, w zoneWeights) model.PlacementResult {
	ordered := orderByPriorityThenVolume(items)
	buckets := bucketContainersByZone(session)

	result := model.PlacementResult{}
	var unplacedVolume int

	for _, item := range ordered {
		placed, budgetExceeded := tryPlace(session, item, buckets, w)
		if placed != nil {
			result.Placements = append(result.Placements, *placed)
			continue
		}
		result.Unplaced = append(result.Unplaced, item.ID)
		unplacedVolume += item.Volume()
		if budgetExceeded {
			result.BudgetExceeded = append(result.BudgetExceeded, item.ID)
		}
	}

	if len(result.Unplaced) > 0 {
		result.Rearrangements = append(result.Rearrangements, model.Rearrangement{
			Type:    model.Expansion,
			Message: fmt.Sprintf("unable to place %d item(s) totaling %d voxels; more capacity or a different zone is needed", len(result.Unplaced), unplacedVolume),
			Items:   append([]string(nil), result.Unplaced...),
		})
	}
	result.Success = len(result.Unplaced) == 0
	return result
}

// orderByPriorityThenVolume sorts by (priority desc, volume desc),
// stable against equal keys, so ties break by input order.
func orderByPriorityThenVolume(items []model.Item) []model.Item {
	ordered := make([]model.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].Volume() > ordered[j].Volume()
	})
	return ordered
}

// bucketContainersByZone groups container ids by zone, each bucket
// sorted by available volume descending as of session's current state
// (computed once, before any item is placed).
func bucketContainersByZone(session *Session) map[string]zoneBucket {
	byZone := make(map[string][]string)
	for id, c := range session.Containers {
		byZone[c.Zone] = append(byZone[c.Zone], id)
	}
	buckets := make(map[string]zoneBucket, len(byZone))
	for zone, ids := range byZone {
		sort.SliceStable(ids, func(i, j int) bool {
			return session.Containers[ids[i]].AvailableVolume() > session.Containers[ids[j]].AvailableVolume()
		})
		buckets[zone] = zoneBucket{zone: zone, containerIDs: ids}
	}
	return buckets
}

// candidate is a scored placement option found during one pass.
type candidate struct {
	containerID string
	pos         model.Position
	score       int
}

// tryPlace runs the preferred pass, then the fallback pass, committing
// the winner into session's grid and updating its container's occupied
// volume. Returns nil if no container fits the item, along with whether
// any considered container's fit search exhausted its position budget.
func tryPlace(session *Session, item model.Item, buckets map[string]zoneBucket, w zoneWeights) (*model.Placement, bool) {
	preferred := buckets[item.PreferredZone].containerIDs
	best, preferredExceeded := bestCandidate(session, item, preferred, w.vertical, 0)
	if best != nil {
		return commit(session, item, *best), false
	}

	var fallback []string
	for zone, bucket := range buckets {
		if zone == item.PreferredZone {
			continue
		}
		fallback = append(fallback, bucket.containerIDs...)
	}
	best, exceeded := bestCandidate(session, item, fallback, w.vertical, w.zonePenalty)
	if best != nil {
		return commit(session, item, *best), false
	}
	return nil, preferredExceeded || exceeded
}

// bestCandidate finds the minimum-score fit across containerIDs,
// scoring score = penalty + z*vertical + x + y, mirroring the distinct
// scale of the grid's own (z,x,y) tie-break. The second
// return is true if any container's search exhausted its fit budget
// without finding a candidate.
func bestCandidate(session *Session, item model.Item, containerIDs []string, vertical, penalty int) (*candidate, bool) {
	var best *candidate
	budgetExceeded := false
	for _, id := range containerIDs {
		c := session.Containers[id]
		if c.AvailableVolume() < item.Volume() {
			continue
		}
		grid := session.Grids[id]
		pos, found, exceeded := grid.FindBestFit(item.Dims)
		if !found {
			if exceeded {
				budgetExceeded = true
			}
			continue
		}
		score := penalty + pos.Start.Z*vertical + pos.Start.X + pos.Start.Y
		if best == nil || score < best.score {
			best = &candidate{containerID: id, pos: pos, score: score}
		}
	}
	return best, budgetExceeded
}

// commit writes the candidate into its grid and container, and returns
// the resulting placement record.
func commit(session *Session, item model.Item, cand candidate) *model.Placement {
	grid := session.Grids[cand.containerID]
	if !grid.PlaceItem(item.ID, item.Volume(), cand.pos) {
		return nil
	}
	c := session.Containers[cand.containerID]
	c.OccupiedVolume += item.Volume()
	session.Containers[cand.containerID] = c

	placedItem := item
	placedItem.ContainerID = cand.containerID
	placedItem.Position = &cand.pos
	session.Items[item.ID] = placedItem

	return &model.Placement{ItemID: item.ID, ContainerID: cand.containerID, Position: cand.pos}
}
