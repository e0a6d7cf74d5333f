package safetyfilter

import (
	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/route"
)

// TargetObjectsOnLane buckets projected objects by the lane they occupy
// relative to the ego route. Buckets are independent: an object whose
// centroid falls inside lanelets of more than one bucket appears in each.
type TargetObjectsOnLane struct {
	OnCurrentLane []ExtendedObject
	OnLeftLane    []ExtendedObject
	OnRightLane   []ExtendedObject
}

// CreateTargetObjectsOnLane partitions an already-filtered object set into
// current/left/right lane buckets and projects each bucketed object
// forward on the configured sampling grid.
//
// Adjacent lanelets are accumulated across every current-lane segment via
// the lane network. Duplicates across segments are kept as-is: the
// centroid membership test is idempotent per object, so de-duplication
// would only save redundant ring tests. A bucket whose candidate lanelet
// set ends up empty is simply left unpopulated.
func CreateTargetObjectsOnLane(
	currentLanes []route.Lanelet,
	network route.LaneNetwork,
	filteredObjects []perception.PredictedObject,
	params ObjectsFilteringParams,
) TargetObjectsOnLane {
	laneConfig := params.ObjectLaneConfiguration
	includeOpposite := params.IncludeOppositeLane
	invertOpposite := params.InvertOppositeLane

	var allLeftLanelets, allRightLanelets []route.Lanelet
	for _, currentLane := range currentLanes {
		allLeftLanelets = append(allLeftLanelets,
			network.LeftSharedLanelets(currentLane, includeOpposite, invertOpposite)...)
		allRightLanelets = append(allRightLanelets,
			network.RightSharedLanelets(currentLane, includeOpposite, invertOpposite)...)
	}

	appendObjectsOnLane := func(checkLanes []route.Lanelet) []ExtendedObject {
		var laneObjects []ExtendedObject
		for i := range filteredObjects {
			if IsCentroidWithinLanelets(&filteredObjects[i], checkLanes) {
				laneObjects = append(laneObjects, Transform(
					&filteredObjects[i],
					params.SafetyCheckTimeHorizon, params.SafetyCheckTimeResolution))
			}
		}
		return laneObjects
	}

	var target TargetObjectsOnLane
	if laneConfig.CheckCurrentLane && len(currentLanes) > 0 {
		target.OnCurrentLane = appendObjectsOnLane(currentLanes)
	}
	if laneConfig.CheckLeftLane && len(allLeftLanelets) > 0 {
		target.OnLeftLane = appendObjectsOnLane(allLeftLanelets)
	}
	if laneConfig.CheckRightLane && len(allRightLanelets) > 0 {
		target.OnRightLane = appendObjectsOnLane(allRightLanelets)
	}
	return target
}
