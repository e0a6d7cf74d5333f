package safetyfilter

import (
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/pathsafety/internal/geom"
	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/route"
)

// samplingEpsilon makes the sampling loop boundary-inclusive: a horizon
// that is an exact multiple of the resolution still gets its final sample.
const samplingEpsilon = 1e-3

// PoseWithVelocityStamped is one sample of the projected ego trajectory.
type PoseWithVelocityStamped struct {
	Time     float64 // Seconds from now
	Pose     perception.Pose
	Velocity float64 // m/s
}

// PoseWithVelocityAndPolygonStamped is one sample of a projected agent
// path: time, pose, speed, and the oriented footprint at that pose.
type PoseWithVelocityAndPolygonStamped struct {
	Time     float64
	Pose     perception.Pose
	Velocity float64
	Polygon  geom.Polygon
}

// PredictedPathWithPolygon is a resampled predicted path whose samples
// carry footprint polygons for collision checks.
type PredictedPathWithPolygon struct {
	Confidence float64
	Path       []PoseWithVelocityAndPolygonStamped
}

// ExtendedObject is the per-cycle projection of one perceived object:
// identity, initial kinematic state, shape, and the time-sampled footprint
// paths a safety check consumes. Created fresh each cycle, discarded at
// cycle end.
type ExtendedObject struct {
	ObjectID            uuid.UUID
	InitialPose         perception.Pose
	InitialTwist        perception.Twist
	InitialAcceleration perception.Accel
	Shape               perception.Shape
	PredictedPaths      []PredictedPathWithPolygon
}

// EgoPredictedPathParams describes the assumed ego motion for projection:
// constant acceleration clamped to a floor speed, sampled on a fixed grid.
type EgoPredictedPathParams struct {
	MinSlowDownSpeed float64 // Velocity floor (m/s)
	Acceleration     float64 // m/s²
	TimeHorizon      float64 // Seconds
	TimeResolution   float64 // Seconds
}

// CreatePredictedPath forward-simulates the ego along the centerline under
// constant acceleration. The ego pose is first converted to its arc-length
// coordinate relative to egoSegmentIndex; each sample advances that
// coordinate by the unclamped kinematic length v0·t + a·t²/2 while the
// reported velocity is clamped to the floor speed. An empty centerline
// yields an empty path.
func CreatePredictedPath(
	params EgoPredictedPathParams,
	line route.Centerline,
	egoPose perception.Pose,
	currentVelocity float64,
	egoSegmentIndex int,
) []PoseWithVelocityStamped {
	if len(line) == 0 || params.TimeResolution <= 0 {
		return nil
	}

	egoFrenet := line.ToFrenet(egoPose.Position, egoSegmentIndex)

	var path []PoseWithVelocityStamped
	for t := 0.0; t < params.TimeHorizon+samplingEpsilon; t += params.TimeResolution {
		velocity := math.Max(currentVelocity+params.Acceleration*t, params.MinSlowDownSpeed)
		length := currentVelocity*t + 0.5*params.Acceleration*t*t
		pose, ok := line.InterpolatePose(egoFrenet.Length + length)
		if !ok {
			break
		}
		path = append(path, PoseWithVelocityStamped{Time: t, Pose: pose, Velocity: velocity})
	}
	return path
}

// Transform projects a perceived object into an ExtendedObject: every
// predicted path is resampled on the (0, resolution, …, horizon] grid,
// each defined sample gets the oriented footprint at its interpolated
// pose, and every sample carries the object's initial planar speed — the
// projection does not re-derive instantaneous speeds. Samples outside a
// path's own span are skipped, never extrapolated.
func Transform(
	object *perception.PredictedObject, timeHorizon, timeResolution float64,
) ExtendedObject {
	extended := ExtendedObject{
		ObjectID:            object.ObjectID,
		InitialPose:         object.Pose,
		InitialTwist:        object.Twist,
		InitialAcceleration: object.Acceleration,
		Shape:               object.Shape,
	}

	if timeResolution <= 0 {
		return extended
	}

	objSpeed := object.PlanarSpeed()

	extended.PredictedPaths = make([]PredictedPathWithPolygon, len(object.PredictedPaths))
	for i, path := range object.PredictedPaths {
		extended.PredictedPaths[i].Confidence = path.Confidence

		for t := 0.0; t < timeHorizon+samplingEpsilon; t += timeResolution {
			pose, ok := path.PoseAt(t)
			if !ok {
				continue
			}
			extended.PredictedPaths[i].Path = append(
				extended.PredictedPaths[i].Path,
				PoseWithVelocityAndPolygonStamped{
					Time:     t,
					Pose:     pose,
					Velocity: objSpeed,
					Polygon:  perception.FootprintAt(pose, object.Shape),
				})
		}
	}
	return extended
}

// PredictedPathsFromObject returns the paths a safety check should
// consider: all of them when useAllPredictedPaths is set, otherwise only
// the single highest-confidence path. The reduction uses strict
// greater-than so confidence ties resolve to the first-listed path.
func PredictedPathsFromObject(
	object *ExtendedObject, useAllPredictedPaths bool,
) []PredictedPathWithPolygon {
	if useAllPredictedPaths || len(object.PredictedPaths) == 0 {
		return object.PredictedPaths
	}

	best := 0
	for i, path := range object.PredictedPaths[1:] {
		if path.Confidence > object.PredictedPaths[best].Confidence {
			best = i + 1
		}
	}
	return object.PredictedPaths[best : best+1]
}
