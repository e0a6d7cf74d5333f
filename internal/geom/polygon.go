package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// coincidentEpsilon is the distance below which two vertices are treated as
// the same point for ring-closing and degeneracy checks.
const coincidentEpsilon = 1e-9

// Polygon is a ring of vertices in world frame. The ring may be open or
// closed; predicates treat both forms identically.
type Polygon []r2.Vec

// vertices returns the ring without a duplicated closing vertex, so edge
// iteration with wraparound visits each edge exactly once.
func (p Polygon) vertices() []r2.Vec {
	n := len(p)
	if n >= 2 && samePoint(p[0], p[n-1]) {
		return p[:n-1]
	}
	return p
}

// ClosedRing returns the ring with its first vertex repeated at the end.
// Rings that are already closed are returned unchanged.
func ClosedRing(points []r2.Vec) Polygon {
	n := len(points)
	if n == 0 {
		return nil
	}
	if samePoint(points[0], points[n-1]) && n >= 2 {
		return Polygon(points)
	}
	ring := make(Polygon, 0, n+1)
	ring = append(ring, points...)
	ring = append(ring, points[0])
	return ring
}

// IsDegenerate reports whether the polygon has fewer than three distinct
// vertices and therefore encloses no area.
func (p Polygon) IsDegenerate() bool {
	return len(p.vertices()) < 3
}

// Centroid returns the vertex mean of the polygon. For the convex footprint
// and lanelet rings handled here the vertex mean is a stable representative
// point; it is not the exact area centroid of a skewed ring.
func (p Polygon) Centroid() r2.Vec {
	verts := p.vertices()
	if len(verts) == 0 {
		return r2.Vec{}
	}
	var sum r2.Vec
	for _, v := range verts {
		sum = r2.Add(sum, v)
	}
	return r2.Scale(1/float64(len(verts)), sum)
}

// ContainsPoint reports whether pt lies strictly inside the polygon.
// Boundary points are excluded: a point on an edge or vertex returns false.
func (p Polygon) ContainsPoint(pt r2.Vec) bool {
	verts := p.vertices()
	n := len(verts)
	if n < 3 {
		return false
	}

	// Boundary points are not inside.
	for i := 0; i < n; i++ {
		if onSegment(verts[i], verts[(i+1)%n], pt) {
			return false
		}
	}

	// Ray cast towards +X, counting edge crossings. The half-open vertex
	// rule (>= on one end, < on the other) counts each vertex once.
	inside := false
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			continue
		}
		crossX := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if pt.X < crossX {
			inside = !inside
		}
	}
	return inside
}

// Disjoint reports whether the two polygons neither overlap nor touch.
// Touching (shared edge or vertex) counts as intersecting. Degenerate
// polygons are disjoint from everything.
func Disjoint(a, b Polygon) bool {
	av := a.vertices()
	bv := b.vertices()
	if len(av) < 3 || len(bv) < 3 {
		return true
	}

	for i := 0; i < len(av); i++ {
		p1 := av[i]
		p2 := av[(i+1)%len(av)]
		for j := 0; j < len(bv); j++ {
			q1 := bv[j]
			q2 := bv[(j+1)%len(bv)]
			if segmentsIntersect(p1, p2, q1, q2) {
				return false
			}
		}
	}

	// No edge contact: one polygon may still enclose the other entirely.
	if a.ContainsPoint(bv[0]) || b.ContainsPoint(av[0]) {
		return false
	}
	return true
}

// samePoint reports whether two vertices coincide within epsilon.
func samePoint(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < coincidentEpsilon && math.Abs(a.Y-b.Y) < coincidentEpsilon
}

// cross2 is the z-component of (b-a) x (c-a), positive when c lies to the
// left of the directed segment a→b.
func cross2(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// onSegment reports whether pt lies on the closed segment a-b.
func onSegment(a, b, pt r2.Vec) bool {
	if math.Abs(cross2(a, b, pt)) > coincidentEpsilon*math.Max(1, r2.Norm(r2.Sub(b, a))) {
		return false
	}
	return pt.X >= math.Min(a.X, b.X)-coincidentEpsilon &&
		pt.X <= math.Max(a.X, b.X)+coincidentEpsilon &&
		pt.Y >= math.Min(a.Y, b.Y)-coincidentEpsilon &&
		pt.Y <= math.Max(a.Y, b.Y)+coincidentEpsilon
}

// segmentsIntersect reports whether segments p1-p2 and q1-q2 share at least
// one point, including endpoint touches and collinear overlap.
func segmentsIntersect(p1, p2, q1, q2 r2.Vec) bool {
	d1 := cross2(q1, q2, p1)
	d2 := cross2(q1, q2, p2)
	d3 := cross2(p1, p2, q1)
	d4 := cross2(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear or endpoint-touching cases.
	return onSegment(q1, q2, p1) || onSegment(q1, q2, p2) ||
		onSegment(p1, p2, q1) || onSegment(p1, p2, q2)
}
