package route

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/geom"
)

// Lanelet is an atomic directed road-segment polygon with lane-level
// connectivity to its neighbours, as supplied by the lane network.
type Lanelet struct {
	ID       int64
	Boundary []r2.Vec // Ordered boundary ring, open or closed
}

// Polygon returns the lanelet boundary as a closed ring. Degenerate
// boundaries yield a polygon that geom predicates treat as empty.
func (l Lanelet) Polygon() geom.Polygon {
	return geom.ClosedRing(l.Boundary)
}

// LaneNetwork is the road-network collaborator contract. The network
// representation itself (map storage, routing graph) lives outside this
// module; the pipeline only needs centerline windows and lateral adjacency.
//
// Adjacency semantics: LeftSharedLanelets returns every lanelet sharing a
// boundary line to the left of the given lanelet. includeOpposite adds
// opposite-direction lanes to the result; invertOpposite restricts the
// result to opposite-direction lanes only (and implies their inclusion).
// RightSharedLanelets mirrors this on the right side.
type LaneNetwork interface {
	// CenterlinePath returns an ordered pose+lane-id sequence through the
	// given lanes, spanning backwardDistance behind to forwardDistance
	// ahead of the lane sequence's reference position.
	CenterlinePath(lanes []Lanelet, backwardDistance, forwardDistance float64) Centerline

	LeftSharedLanelets(lane Lanelet, includeOpposite, invertOpposite bool) []Lanelet
	RightSharedLanelets(lane Lanelet, includeOpposite, invertOpposite bool) []Lanelet
}

// StaticNetwork is an in-memory LaneNetwork backed by explicit adjacency
// tables. It serves tests and offline tools; a production network adapter
// would wrap a real map backend behind the same interface.
type StaticNetwork struct {
	Line Centerline

	Left          map[int64][]Lanelet
	Right         map[int64][]Lanelet
	LeftOpposite  map[int64][]Lanelet
	RightOpposite map[int64][]Lanelet
}

// CenterlinePath returns the stored centerline. The fixture assumes the
// stored line already spans the requested window.
func (n *StaticNetwork) CenterlinePath(_ []Lanelet, _, _ float64) Centerline {
	return n.Line
}

// LeftSharedLanelets implements LaneNetwork over the adjacency tables.
func (n *StaticNetwork) LeftSharedLanelets(lane Lanelet, includeOpposite, invertOpposite bool) []Lanelet {
	return selectAdjacent(n.Left[lane.ID], n.LeftOpposite[lane.ID], includeOpposite, invertOpposite)
}

// RightSharedLanelets implements LaneNetwork over the adjacency tables.
func (n *StaticNetwork) RightSharedLanelets(lane Lanelet, includeOpposite, invertOpposite bool) []Lanelet {
	return selectAdjacent(n.Right[lane.ID], n.RightOpposite[lane.ID], includeOpposite, invertOpposite)
}

func selectAdjacent(same, opposite []Lanelet, includeOpposite, invertOpposite bool) []Lanelet {
	if invertOpposite {
		return append([]Lanelet(nil), opposite...)
	}
	out := append([]Lanelet(nil), same...)
	if includeOpposite {
		out = append(out, opposite...)
	}
	return out
}
