package safetyfilter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/route"
)

// LaneConfiguration selects which lane buckets CreateTargetObjectsOnLane
// populates.
type LaneConfiguration struct {
	CheckCurrentLane bool
	CheckLeftLane    bool
	CheckRightLane   bool
}

// ObjectsFilteringParams holds the resolved thresholds for one filtering
// invocation. Immutable during a call.
type ObjectsFilteringParams struct {
	// IgnoreObjectVelocityThreshold is the lower speed bound (m/s); slower
	// objects are dropped by the velocity gate.
	IgnoreObjectVelocityThreshold float64

	// Longitudinal window along the route centerline (metres).
	ObjectCheckForwardDistance  float64
	ObjectCheckBackwardDistance float64

	// ObjectTypesToCheck flags the semantic classes worth considering.
	ObjectTypesToCheck perception.ClassCheckSet

	// Lane bucket selection and opposite-lane handling.
	ObjectLaneConfiguration LaneConfiguration
	IncludeOppositeLane     bool
	InvertOppositeLane      bool

	// Sampling grid for other-agent projection (seconds).
	SafetyCheckTimeHorizon    float64
	SafetyCheckTimeResolution float64

	// UseAllPredictedPaths keeps every predicted path of an agent instead
	// of only its most confident one.
	UseAllPredictedPaths bool
}

// FilterObjects runs the three-stage gate over a batch of perceived
// objects: velocity, semantic class, then longitudinal window along the
// centerline the lane network supplies for the current lanes. Stages are
// ordered so the cheaper later stages see the already-shrunk set. Empty
// input short-circuits to an empty output.
func FilterObjects(
	objects []perception.PredictedObject,
	network route.LaneNetwork,
	currentLanes []route.Lanelet,
	egoPosition r2.Vec,
	params ObjectsFilteringParams,
) []perception.PredictedObject {
	if len(objects) == 0 {
		return nil
	}

	filtered := RemoveSlowObjects(objects, params.IgnoreObjectVelocityThreshold)
	filtered = FilterObjectsByClass(filtered, params.ObjectTypesToCheck)

	line := network.CenterlinePath(
		currentLanes, params.ObjectCheckBackwardDistance, params.ObjectCheckForwardDistance)

	return FilterObjectsByPosition(
		filtered, line, egoPosition,
		params.ObjectCheckForwardDistance, params.ObjectCheckBackwardDistance)
}

// FilterObjectsByVelocity keeps objects whose planar speed magnitude lies
// strictly between the two bounds. Order-preserving; the input is never
// mutated.
func FilterObjectsByVelocity(
	objects []perception.PredictedObject, lowerBound, upperBound float64,
) []perception.PredictedObject {
	filtered := make([]perception.PredictedObject, 0, len(objects))
	for _, obj := range objects {
		speed := obj.PlanarSpeed()
		if lowerBound < speed && speed < upperBound {
			filtered = append(filtered, obj)
		}
	}
	return filtered
}

// RemoveSlowObjects keeps objects moving strictly faster than the
// threshold.
func RemoveSlowObjects(
	objects []perception.PredictedObject, threshold float64,
) []perception.PredictedObject {
	return FilterObjectsByVelocity(objects, threshold, math.Inf(1))
}

// RemoveFastObjects keeps objects moving strictly slower than the
// threshold, i.e. the symmetric interval (-threshold, threshold). This is
// the complement convenience of RemoveSlowObjects; the two are independent
// filters, not combinable in one call.
func RemoveFastObjects(
	objects []perception.PredictedObject, threshold float64,
) []perception.PredictedObject {
	return FilterObjectsByVelocity(objects, -threshold, threshold)
}

// FilterObjectsByClass keeps objects whose highest-probability semantic
// label is in the enabled class set.
func FilterObjectsByClass(
	objects []perception.PredictedObject, targetTypes perception.ClassCheckSet,
) []perception.PredictedObject {
	filtered := make([]perception.PredictedObject, 0, len(objects))
	for _, obj := range objects {
		label := perception.HighestProbLabel(obj.Classifications)
		if targetTypes.Enabled(label) {
			filtered = append(filtered, obj)
		}
	}
	return filtered
}

// FilterObjectsByPosition keeps objects whose signed arc length from the
// ego position, measured along the centerline, lies strictly within
// (-backwardDistance, forwardDistance).
func FilterObjectsByPosition(
	objects []perception.PredictedObject,
	line route.Centerline,
	egoPosition r2.Vec,
	forwardDistance, backwardDistance float64,
) []perception.PredictedObject {
	if len(line) < 2 {
		// No usable centerline: no arc-length coordinate exists, so no
		// object can be placed in the window.
		return nil
	}
	filtered := make([]perception.PredictedObject, 0, len(objects))
	for _, obj := range objects {
		distEgoToObj := line.SignedArcLength(egoPosition, obj.Pose.Position)
		if -backwardDistance < distEgoToObj && distEgoToObj < forwardDistance {
			filtered = append(filtered, obj)
		}
	}
	return filtered
}
