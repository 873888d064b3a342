package model

// Dims is a right-handed triple of strictly positive voxel extents: w
// (left-right), d (front-back, y=0 is the open face), h (bottom-top).
type Dims struct {
	W int `json:"w"`
	D int `json:"d"`
	H int `json:"h"`
}

// Volume returns w*d*h.
func (d Dims) Volume() int {
	return d.W * d.D * d.H
}

// Valid reports whether every extent is strictly positive.
func (d Dims) Valid() bool {
	return d.W > 0 && d.D > 0 && d.H > 0
}

// Point is an integer voxel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Position is a half-open axis-aligned box in container-local voxel
// coordinates: Start.axis < End.axis on every axis.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Dims returns the box's extent on each axis.
func (p Position) Dims() Dims {
	return Dims{W: p.End.X - p.Start.X, D: p.End.Y - p.Start.Y, H: p.End.Z - p.Start.Z}
}

// Volume returns the voxel count of the box.
func (p Position) Volume() int {
	dm := p.Dims()
	return dm.W * dm.D * dm.H
}

// WithinBounds reports whether the position lies inside a container of the given dims.
func (p Position) WithinBounds(container Dims) bool {
	if p.Start.X < 0 || p.Start.Y < 0 || p.Start.Z < 0 {
		return false
	}
	if p.Start.X >= p.End.X || p.Start.Y >= p.End.Y || p.Start.Z >= p.End.Z {
		return false
	}
	return p.End.X <= container.W && p.End.Y <= container.D && p.End.Z <= container.H
}

// BoxOverlaps reports whether two half-open boxes share any voxel.
func BoxOverlaps(a, b Position) bool {
	if a.End.X <= b.Start.X || b.End.X <= a.Start.X {
		return false
	}
	if a.End.Y <= b.Start.Y || b.End.Y <= a.Start.Y {
		return false
	}
	if a.End.Z <= b.Start.Z || b.End.Z <= a.Start.Z {
		return false
	}
	return true
}

// PositionAt builds the half-open box anchored at (x,y,z) with the given dims.
func PositionAt(x, y, z int, d Dims) Position {
	return Position{
		Start: Point{X: x, Y: y, Z: z},
		End:   Point{X: x + d.W, Y: y + d.D, Z: z + d.H},
	}
}

// Orientations returns the distinct axis permutations of d, duplicates
// suppressed when two or more extents are equal. Order is fixed:
// (w,d,h), (w,h,d), (d,w,h), (d,h,w), (h,w,d), (h,d,w).
func Orientations(d Dims) []Dims {
	candidates := [6]Dims{
		{d.W, d.D, d.H},
		{d.W, d.H, d.D},
		{d.D, d.W, d.H},
		{d.D, d.H, d.W},
		{d.H, d.W, d.D},
		{d.H, d.D, d.W},
	}
	seen := make(map[Dims]bool, 6)
	out := make([]Dims, 0, 6)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// LargeItemVolumeThreshold marks items whose orientation/anchor search
// may be restricted per the fit-search heuristics.
const LargeItemVolumeThreshold = 5000

// SearchOrientations returns the orientations find_best_fit should try
// for an item of the given dims, applying the large-item restriction to
// three orientations (one per leading axis) above the default volume
// threshold. Callers that need a configurable threshold should use
// SearchOrientationsWithThreshold instead.
func SearchOrientations(d Dims) []Dims {
	return SearchOrientationsWithThreshold(d, LargeItemVolumeThreshold)
}

// SearchOrientationsWithThreshold is SearchOrientations with the
// large-item volume threshold supplied by the caller instead of fixed at
// LargeItemVolumeThreshold.
func SearchOrientationsWithThreshold(d Dims, threshold int) []Dims {
	all := Orientations(d)
	if d.Volume() <= threshold || len(all) <= 3 {
		return all
	}
	leading := make(map[int]bool, 3)
	restricted := make([]Dims, 0, 3)
	for _, o := range all {
		if leading[o.W] {
			continue
		}
		leading[o.W] = true
		restricted = append(restricted, o)
		if len(restricted) == 3 {
			break
		}
	}
	return restricted
}
