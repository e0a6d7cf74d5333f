package perception

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/geom"
)

// Pose is a planar pose: position in world frame plus yaw in radians.
type Pose struct {
	Position r2.Vec
	Yaw      float64 // Rotation around Z-axis, [-π, π]
}

// Twist is a planar velocity in the world frame (m/s).
type Twist struct {
	Linear r2.Vec
}

// Speed returns the planar speed magnitude in m/s.
func (t Twist) Speed() float64 {
	return math.Hypot(t.Linear.X, t.Linear.Y)
}

// Accel is a planar acceleration in the world frame (m/s²).
type Accel struct {
	Linear r2.Vec
}

// PredictedPathPoint is one sample of an externally predicted path.
type PredictedPathPoint struct {
	TimeOffset float64 // Seconds from the prediction epoch; strictly increasing
	Pose       Pose
}

// PredictedPath is a hypothesized future trajectory for an agent, produced
// by the prediction collaborator. Confidence is in [0, 1]. Lifetime is one
// planning cycle.
type PredictedPath struct {
	Confidence float64
	Points     []PredictedPathPoint
}

// PoseAt interpolates the path pose at time offset t. The second return is
// false when t lies outside the path's own span (no extrapolation) or the
// path is empty.
func (p PredictedPath) PoseAt(t float64) (Pose, bool) {
	n := len(p.Points)
	if n == 0 {
		return Pose{}, false
	}

	const timeEpsilon = 1e-9
	first := p.Points[0].TimeOffset
	last := p.Points[n-1].TimeOffset
	if t < first-timeEpsilon || t > last+timeEpsilon {
		return Pose{}, false
	}
	if t <= first {
		return p.Points[0].Pose, true
	}
	if t >= last {
		return p.Points[n-1].Pose, true
	}

	// Find the bracketing samples and interpolate linearly in time.
	for i := 1; i < n; i++ {
		b := p.Points[i]
		if t > b.TimeOffset {
			continue
		}
		a := p.Points[i-1]
		span := b.TimeOffset - a.TimeOffset
		if span <= timeEpsilon {
			return b.Pose, true
		}
		ratio := (t - a.TimeOffset) / span
		return interpolatePose(a.Pose, b.Pose, ratio), true
	}
	return p.Points[n-1].Pose, true
}

// interpolatePose blends two poses: linear in position, shortest-arc in yaw.
func interpolatePose(a, b Pose, ratio float64) Pose {
	pos := r2.Add(a.Position, r2.Scale(ratio, r2.Sub(b.Position, a.Position)))

	diff := b.Yaw - a.Yaw
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	yaw := a.Yaw + ratio*diff
	for yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw < -math.Pi {
		yaw += 2 * math.Pi
	}
	return Pose{Position: pos, Yaw: yaw}
}

// PredictedObject is one perceived dynamic object as supplied by the
// perception collaborator for a single planning cycle.
type PredictedObject struct {
	ObjectID        uuid.UUID
	Pose            Pose
	Twist           Twist
	Acceleration    Accel
	Shape           Shape
	Classifications []Classification
	PredictedPaths  []PredictedPath
}

// PlanarSpeed returns the magnitude of the object's initial planar velocity.
func (o *PredictedObject) PlanarSpeed() float64 {
	return o.Twist.Speed()
}

// Footprint returns the object's oriented footprint polygon at its initial
// pose.
func (o *PredictedObject) Footprint() geom.Polygon {
	return FootprintAt(o.Pose, o.Shape)
}
