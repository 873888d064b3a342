package engine

import (
	"sort"

	"github.com/spacecargo/stowage/internal/model"
)

// GridConfig tunes a Grid's occupancy representation and fit search.
// It is the engine-facing mirror of config.EngineConfig; callers outside
// the engine package supply it rather than the engine reading
// configuration itself.
type GridConfig struct {
	// DenseVoxelThreshold is the container volume above which a Grid
	// switches from a dense [][][]string array to a sparse per-item
	// bounding-box map.
	DenseVoxelThreshold int
	// FitSearchBudget caps the number of anchor positions find_best_fit
	// examines across all orientations in a single call.
	FitSearchBudget int
	// LargeItemVolumeThreshold marks items whose orientation/anchor
	// search is restricted, per model.SearchOrientationsWithThreshold.
	LargeItemVolumeThreshold int
}

// DefaultGridConfig returns the engine's built-in tuning defaults.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		DenseVoxelThreshold:      1_000_000,
		FitSearchBudget:          10_000,
		LargeItemVolumeThreshold: model.LargeItemVolumeThreshold,
	}
}

// withGridConfigDefaults fills any non-positive field of cfg with
// DefaultGridConfig's value, so a caller-supplied zero-value GridConfig
// (e.g. from an unmarshaled config struct with missing fields) behaves
// like the default instead of zeroing out the fit search.
func withGridConfigDefaults(cfg GridConfig) GridConfig {
	d := DefaultGridConfig()
	if cfg.DenseVoxelThreshold <= 0 {
		cfg.DenseVoxelThreshold = d.DenseVoxelThreshold
	}
	if cfg.FitSearchBudget <= 0 {
		cfg.FitSearchBudget = d.FitSearchBudget
	}
	if cfg.LargeItemVolumeThreshold <= 0 {
		cfg.LargeItemVolumeThreshold = d.LargeItemVolumeThreshold
	}
	return cfg
}

// itemRecord is the metadata a Grid keeps for one placed item.
type itemRecord struct {
	volume   int
	position model.Position
}

// Grid is the per-container occupancy structure. The dense/sparse choice
// is made once at construction and is invisible to callers: both
// representations satisfy the same is_region_empty/place/remove/find_best_fit
// contract.
type Grid struct {
	dims   model.Dims
	sparse bool
	cfg    GridConfig

	// dense[x][y][z] holds an item id, or "" when empty.
	dense [][][]string

	// items holds metadata for every placed item, used directly by the
	// sparse representation and for bookkeeping (occupied volume,
	// reversibility checks) in both representations.
	items map[string]itemRecord
}

// NewGrid builds an empty grid for a container of the given dims,
// choosing the dense or sparse representation by voxel count and tuning
// its fit search per cfg. A non-positive field falls back to
// DefaultGridConfig's value for that field, so a zero-value GridConfig
// behaves like the default rather than silently disabling the grid.
func NewGrid(dims model.Dims, cfg GridConfig) *Grid {
	cfg = withGridConfigDefaults(cfg)
	g := &Grid{
		dims:   dims,
		sparse: dims.Volume() > cfg.DenseVoxelThreshold,
		cfg:    cfg,
		items:  make(map[string]itemRecord),
	}
	if !g.sparse {
		g.dense = make([][][]string, dims.W)
		for x := range g.dense {
			g.dense[x] = make([][]string, dims.D)
			for y := range g.dense[x] {
				g.dense[x][y] = make([]string, dims.H)
			}
		}
	}
	return g
}

// Sparse reports whether the grid is using the sparse representation.
// Exposed for diagnostics and tests; callers never need to branch on it.
func (g *Grid) Sparse() bool {
	return g.sparse
}

// OccupiedVolume returns the sum of volumes of currently placed items.
func (g *Grid) OccupiedVolume() int {
	total := 0
	for _, rec := range g.items {
		total += rec.volume
	}
	return total
}

// IsRegionEmpty reports whether every voxel in the half-open box pos is
// empty. Out-of-bounds boxes are rejected by returning false, never by
// panicking.
func (g *Grid) IsRegionEmpty(pos model.Position) bool {
	if !pos.WithinBounds(g.dims) {
		return false
	}
	if g.sparse {
		for _, rec := range g.items {
			if model.BoxOverlaps(pos, rec.position) {
				return false
			}
		}
		return true
	}
	for x := pos.Start.X; x < pos.End.X; x++ {
		for y := pos.Start.Y; y < pos.End.Y; y++ {
			for z := pos.Start.Z; z < pos.End.Z; z++ {
				if g.dense[x][y][z] != "" {
					return false
				}
			}
		}
	}
	return true
}

// PlaceItem marks every voxel of pos with itemID and records volume as
// the item's canonical volume. It fails without mutating the grid if the
// region is not empty, out of bounds, or volume disagrees with the box
// volume (a checked invariant, not a caller error path).
func (g *Grid) PlaceItem(itemID string, volume int, pos model.Position) bool {
	if volume != pos.Volume() {
		return false
	}
	if !g.IsRegionEmpty(pos) {
		return false
	}
	if !g.sparse {
		for x := pos.Start.X; x < pos.End.X; x++ {
			for y := pos.Start.Y; y < pos.End.Y; y++ {
				for z := pos.Start.Z; z < pos.End.Z; z++ {
					g.dense[x][y][z] = itemID
				}
			}
		}
	}
	g.items[itemID] = itemRecord{volume: volume, position: pos}
	return true
}

// RemoveItem clears the voxels previously written by itemID and forgets
// its metadata. Returns false if the id is unknown.
func (g *Grid) RemoveItem(itemID string) bool {
	rec, ok := g.items[itemID]
	if !ok {
		return false
	}
	if !g.sparse {
		pos := rec.position
		for x := pos.Start.X; x < pos.End.X; x++ {
			for y := pos.Start.Y; y < pos.End.Y; y++ {
				for z := pos.Start.Z; z < pos.End.Z; z++ {
					g.dense[x][y][z] = ""
				}
			}
		}
	}
	delete(g.items, itemID)
	return true
}

// ItemAt returns the position previously recorded for itemID.
func (g *Grid) ItemAt(itemID string) (model.Position, bool) {
	rec, ok := g.items[itemID]
	return rec.position, ok
}

// OccupiedItemIDs returns the ids of every item currently placed in the
// grid, in the grid's discovery order: dense scans
// y,x,z ascending; sparse enumerates stored boxes ordered by
// (Start.Y, Start.X, Start.Z).
func (g *Grid) OccupiedItemIDs() []string {
	if g.sparse {
		ids := make([]string, 0, len(g.items))
		for id := range g.items {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := g.items[ids[i]].position, g.items[ids[j]].position
			if a.Start.Y != b.Start.Y {
				return a.Start.Y < b.Start.Y
			}
			if a.Start.X != b.Start.X {
				return a.Start.X < b.Start.X
			}
			return a.Start.Z < b.Start.Z
		})
		return ids
	}
	seen := make(map[string]bool, len(g.items))
	var ids []string
	for y := 0; y < g.dims.D; y++ {
		for x := 0; x < g.dims.W; x++ {
			for z := 0; z < g.dims.H; z++ {
				id := g.dense[x][y][z]
				if id != "" && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

// itemsOverlapping returns, in the grid's discovery order, the distinct
// item ids occupying any voxel of prism (excluding excludeID).
func (g *Grid) itemsOverlapping(prism model.Position, excludeID string) []string {
	if g.sparse {
		type hit struct {
			id  string
			pos model.Position
		}
		var hits []hit
		for id, rec := range g.items {
			if id == excludeID {
				continue
			}
			if model.BoxOverlaps(prism, rec.position) {
				hits = append(hits, hit{id: id, pos: rec.position})
			}
		}
		sort.Slice(hits, func(i, j int) bool {
			a, b := hits[i].pos, hits[j].pos
			if a.Start.Y != b.Start.Y {
				return a.Start.Y < b.Start.Y
			}
			if a.Start.X != b.Start.X {
				return a.Start.X < b.Start.X
			}
			return a.Start.Z < b.Start.Z
		})
		ids := make([]string, len(hits))
		for i, h := range hits {
			ids[i] = h.id
		}
		return ids
	}

	x1, x2 := clamp(prism.Start.X, g.dims.W), clamp(prism.End.X, g.dims.W)
	y1, y2 := clamp(prism.Start.Y, g.dims.D), clamp(prism.End.Y, g.dims.D)
	z1, z2 := clamp(prism.Start.Z, g.dims.H), clamp(prism.End.Z, g.dims.H)

	seen := make(map[string]bool)
	var ids []string
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			for z := z1; z < z2; z++ {
				id := g.dense[x][y][z]
				if id != "" && id != excludeID && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// fitCandidate is one anchor position evaluated during find_best_fit.
type fitCandidate struct {
	pos   model.Position
	order int // orientation's rank in searchOrientations, for tie-breaking
}

// FindBestFit searches all valid orientations and anchor positions for
// dims, returning the position minimizing the lexicographic key
// (z, x, y), and whether any position fits. exhaustedBudget reports
// whether the cfg.FitSearchBudget cap was hit before a full search completed;
// when a candidate was still found despite the cap, the caller may treat
// that as a soft diagnostic rather than a hard failure.
func (g *Grid) FindBestFit(dims model.Dims) (pos model.Position, found bool, exhaustedBudget bool) {
	orientations := model.SearchOrientationsWithThreshold(dims, g.cfg.LargeItemVolumeThreshold)

	var best *fitCandidate
	examined := 0
	budgetHit := false

outer:
	for oi, o := range orientations {
		for _, anchor := range g.anchorsFor(o) {
			if examined >= g.cfg.FitSearchBudget {
				budgetHit = true
				break outer
			}
			examined++
			candidate := model.PositionAt(anchor.X, anchor.Y, anchor.Z, o)
			if !g.IsRegionEmpty(candidate) {
				continue
			}
			if best == nil || lessFitKey(candidate, oi, best.pos, best.order) {
				best = &fitCandidate{pos: candidate, order: oi}
			}
		}
	}

	if best == nil {
		return model.Position{}, false, budgetHit
	}
	return best.pos, true, budgetHit
}

// lessFitKey reports whether (a, aOrder) sorts before (b, bOrder) under
// the (z, x, y) lexicographic key, ties broken by orientation order.
func lessFitKey(a model.Position, aOrder int, b model.Position, bOrder int) bool {
	if a.Start.Z != b.Start.Z {
		return a.Start.Z < b.Start.Z
	}
	if a.Start.X != b.Start.X {
		return a.Start.X < b.Start.X
	}
	if a.Start.Y != b.Start.Y {
		return a.Start.Y < b.Start.Y
	}
	return aOrder < bOrder
}

// anchorsFor enumerates candidate anchor positions for placing an item of
// dims o. Small items (o.Volume() <= g.cfg.LargeItemVolumeThreshold) are
// searched exhaustively; large items are subsampled on x and y with step
// max(1, edge/10), always including both extreme anchors on each axis, z
// never subsampled.
func (g *Grid) anchorsFor(o model.Dims) []model.Point {
	maxX := g.dims.W - o.W
	maxY := g.dims.D - o.D
	maxZ := g.dims.H - o.H
	if maxX < 0 || maxY < 0 || maxZ < 0 {
		return nil
	}

	xs := axisAnchors(maxX, o.W, o.Volume(), g.cfg.LargeItemVolumeThreshold)
	ys := axisAnchors(maxY, o.D, o.Volume(), g.cfg.LargeItemVolumeThreshold)
	zs := fullRange(maxZ)

	anchors := make([]model.Point, 0, len(xs)*len(ys)*len(zs))
	for _, z := range zs {
		for _, x := range xs {
			for _, y := range ys {
				anchors = append(anchors, model.Point{X: x, Y: y, Z: z})
			}
		}
	}
	return anchors
}

func fullRange(max int) []int {
	out := make([]int, max+1)
	for i := range out {
		out[i] = i
	}
	return out
}

func axisAnchors(max, edge, volume, largeItemVolumeThreshold int) []int {
	if max <= 0 {
		return []int{0}
	}
	if volume <= largeItemVolumeThreshold {
		return fullRange(max)
	}
	step := edge / 10
	if step < 1 {
		step = 1
	}
	seen := make(map[int]bool)
	var out []int
	add := func(v int) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	add(0)
	for v := step; v < max; v += step {
		add(v)
	}
	add(max)
	sort.Ints(out)
	return out
}
