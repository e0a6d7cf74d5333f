package route

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/perception"
)

// PathPoint is one centerline sample: a pose plus the lanelet it belongs to.
type PathPoint struct {
	Pose   perception.Pose
	LaneID int64
}

// Centerline is an ordered sequence of path points describing the ego's
// intended path over a bounded look-ahead/look-behind window.
type Centerline []PathPoint

// FrenetPoint is a position expressed in route coordinates: Length is the
// arc-length coordinate from the start of the centerline, Distance the
// lateral offset (positive left of the path).
type FrenetPoint struct {
	Length   float64
	Distance float64
}

// NearestSegmentIndex returns the index i of the segment [i, i+1] closest
// to the given point. Returns -1 for centerlines with fewer than two
// points.
func (line Centerline) NearestSegmentIndex(pt r2.Vec) int {
	n := len(line)
	if n < 2 {
		return -1
	}

	nearest := 0
	best := math.MaxFloat64
	for i, p := range line {
		d := r2.Norm(r2.Sub(pt, p.Pose.Position))
		if d < best {
			best = d
			nearest = i
		}
	}

	if nearest == 0 {
		return 0
	}
	if nearest == n-1 {
		return n - 2
	}
	// The nearest vertex sits between two segments; a negative
	// longitudinal offset onto the outgoing segment means the point
	// projects onto the incoming one.
	if line.longitudinalOffsetToSegment(nearest, pt) < 0 {
		return nearest - 1
	}
	return nearest
}

// longitudinalOffsetToSegment projects pt onto the segment starting at
// segIdx and returns the signed distance along the segment direction.
func (line Centerline) longitudinalOffsetToSegment(segIdx int, pt r2.Vec) float64 {
	a := line[segIdx].Pose.Position
	b := line[segIdx+1].Pose.Position
	seg := r2.Sub(b, a)
	segLen := r2.Norm(seg)
	if segLen == 0 {
		return 0
	}
	return r2.Dot(r2.Sub(pt, a), seg) / segLen
}

// segmentLength returns the euclidean length of segment [i, i+1].
func (line Centerline) segmentLength(i int) float64 {
	return r2.Norm(r2.Sub(line[i+1].Pose.Position, line[i].Pose.Position))
}

// arcLengthToSegment returns the accumulated length from the first point to
// the start of segment segIdx.
func (line Centerline) arcLengthToSegment(segIdx int) float64 {
	var sum float64
	for i := 0; i < segIdx; i++ {
		sum += line.segmentLength(i)
	}
	return sum
}

// TotalLength returns the full arc length of the centerline.
func (line Centerline) TotalLength() float64 {
	if len(line) < 2 {
		return 0
	}
	return line.arcLengthToSegment(len(line) - 1)
}

// SignedArcLength returns the distance measured along the centerline from
// the projection of `from` to the projection of `to`. Negative means `to`
// lies behind `from`. Centerlines with fewer than two points yield zero.
func (line Centerline) SignedArcLength(from, to r2.Vec) float64 {
	segFrom := line.NearestSegmentIndex(from)
	segTo := line.NearestSegmentIndex(to)
	if segFrom < 0 || segTo < 0 {
		return 0
	}

	arc := line.arcLengthToSegment(segTo) - line.arcLengthToSegment(segFrom)
	arc += line.longitudinalOffsetToSegment(segTo, to)
	arc -= line.longitudinalOffsetToSegment(segFrom, from)
	return arc
}

// ToFrenet converts a world position to route coordinates relative to the
// given nearby segment index. Callers that do not track a segment index can
// pass the result of NearestSegmentIndex.
func (line Centerline) ToFrenet(pt r2.Vec, segIdx int) FrenetPoint {
	if segIdx < 0 || segIdx >= len(line)-1 {
		return FrenetPoint{}
	}
	a := line[segIdx].Pose.Position
	b := line[segIdx+1].Pose.Position
	seg := r2.Sub(b, a)
	segLen := r2.Norm(seg)

	fp := FrenetPoint{Length: line.arcLengthToSegment(segIdx)}
	if segLen == 0 {
		return fp
	}
	rel := r2.Sub(pt, a)
	fp.Length += r2.Dot(rel, seg) / segLen
	fp.Distance = r2.Cross(seg, rel) / segLen
	return fp
}

// InterpolatePose returns the pose at the given arc-length coordinate,
// clamped to the ends of the centerline. Position interpolates linearly
// within a segment; yaw is the segment heading. The second return is false
// when the centerline has fewer than two points.
func (line Centerline) InterpolatePose(arcLen float64) (perception.Pose, bool) {
	n := len(line)
	if n == 0 {
		return perception.Pose{}, false
	}
	if n == 1 {
		return line[0].Pose, true
	}

	if arcLen <= 0 {
		return perception.Pose{
			Position: line[0].Pose.Position,
			Yaw:      line.segmentYaw(0),
		}, true
	}

	remaining := arcLen
	for i := 0; i < n-1; i++ {
		segLen := line.segmentLength(i)
		if remaining <= segLen || i == n-2 {
			if segLen == 0 {
				return perception.Pose{
					Position: line[i].Pose.Position,
					Yaw:      line.segmentYaw(i),
				}, true
			}
			ratio := remaining / segLen
			if ratio > 1 {
				ratio = 1 // Clamp beyond the final segment
			}
			a := line[i].Pose.Position
			b := line[i+1].Pose.Position
			return perception.Pose{
				Position: r2.Add(a, r2.Scale(ratio, r2.Sub(b, a))),
				Yaw:      line.segmentYaw(i),
			}, true
		}
		remaining -= segLen
	}

	return line[n-1].Pose, true
}

// segmentYaw returns the heading of segment [i, i+1], falling back to the
// stored pose yaw for zero-length segments.
func (line Centerline) segmentYaw(i int) float64 {
	seg := r2.Sub(line[i+1].Pose.Position, line[i].Pose.Position)
	if seg.X == 0 && seg.Y == 0 {
		return line[i].Pose.Yaw
	}
	return math.Atan2(seg.Y, seg.X)
}
