package safetyfilter

import (
	"github.com/banshee-data/pathsafety/internal/geom"
	"github.com/banshee-data/pathsafety/internal/monitoring"
	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/route"
)

// SeparateObjectsByLanelets partitions objects into those whose oriented
// footprint touches or overlaps at least one target lanelet polygon and the
// rest. First matching lanelet wins; remaining lanelets are skipped for
// that object. An empty lanelet set yields two empty partitions — "no
// lanelets" means "no matches", not "everything matches". Lanelets with
// degenerate polygons are skipped as no-match.
func SeparateObjectsByLanelets(
	objects []perception.PredictedObject, targetLanelets []route.Lanelet,
) (inLanelets, others []perception.PredictedObject) {
	targetIndices, otherIndices := separateObjectIndicesByLanelets(objects, targetLanelets)

	inLanelets = make([]perception.PredictedObject, 0, len(targetIndices))
	others = make([]perception.PredictedObject, 0, len(otherIndices))
	for _, i := range targetIndices {
		inLanelets = append(inLanelets, objects[i])
	}
	for _, i := range otherIndices {
		others = append(others, objects[i])
	}
	return inLanelets, others
}

func separateObjectIndicesByLanelets(
	objects []perception.PredictedObject, targetLanelets []route.Lanelet,
) (targetIndices, otherIndices []int) {
	if len(targetLanelets) == 0 {
		return nil, nil
	}

	for i := range objects {
		objPolygon := objects[i].Footprint()

		matched := false
		for _, llt := range targetLanelets {
			lltPolygon := llt.Polygon()
			if lltPolygon.IsDegenerate() {
				monitoring.Logf("safetyfilter: skipping degenerate lanelet polygon id=%d", llt.ID)
				continue
			}
			if !geom.Disjoint(lltPolygon, objPolygon) {
				targetIndices = append(targetIndices, i)
				matched = true
				break
			}
		}
		if !matched {
			otherIndices = append(otherIndices, i)
		}
	}
	return targetIndices, otherIndices
}

// IsCentroidWithinLanelets reports whether the object's centroid lies
// strictly inside any of the target lanelets. A centroid exactly on a
// lanelet boundary does NOT count as within. Returns false for an empty
// lanelet set. Short-circuits on the first hit.
func IsCentroidWithinLanelets(
	object *perception.PredictedObject, targetLanelets []route.Lanelet,
) bool {
	if len(targetLanelets) == 0 {
		return false
	}

	centroid := object.Pose.Position
	for _, llt := range targetLanelets {
		if llt.Polygon().ContainsPoint(centroid) {
			return true
		}
	}
	return false
}
