// Package main provides a scenario simulator for the path-safety filtering
// pipeline. It loads a JSON scenario (ego state, centerline, lanelets,
// perceived objects), runs the full filter + lane-bucketing + projection
// chain, and prints a summary.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/params"
	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/route"
	"github.com/banshee-data/pathsafety/internal/safetyfilter"
	"github.com/banshee-data/pathsafety/internal/units"
)

// Scenario is the JSON input schema.
type Scenario struct {
	Ego        EgoState      `json:"ego"`
	Centerline []CenterPoint `json:"centerline"`
	Lanelets   []LaneletSpec `json:"lanelets"`
	Objects    []ObjectSpec  `json:"objects"`
}

// EgoState is the ego vehicle's current state.
type EgoState struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Yaw          float64 `json:"yaw"`
	Speed        float64 `json:"speed_mps"`
	SegmentIndex int     `json:"segment_index"`
}

// CenterPoint is one centerline sample.
type CenterPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	LaneID int64   `json:"lane_id"`
}

// LaneletSpec places a lanelet relative to the ego route.
type LaneletSpec struct {
	ID   int64        `json:"id"`
	Side string       `json:"side"` // current, left, right, left_opposite, right_opposite
	Ring [][2]float64 `json:"ring"`
}

// ObjectSpec is one perceived object.
type ObjectSpec struct {
	Class  string     `json:"class"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Yaw    float64    `json:"yaw"`
	VX     float64    `json:"vx"`
	VY     float64    `json:"vy"`
	Length float64    `json:"length"`
	Width  float64    `json:"width"`
	Paths  []PathSpec `json:"paths"`
}

// PathSpec is one predicted path for an object.
type PathSpec struct {
	Confidence float64      `json:"confidence"`
	Points     [][3]float64 `json:"points"` // t, x, y
}

func main() {
	scenarioPath := flag.String("scenario", "", "Path to scenario JSON file (required)")
	paramsPath := flag.String("params", "", "Optional params JSON overlay")
	speedUnit := flag.String("units", units.MPS, "Speed unit for output (mps, mph, kph)")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("scenario file is required")
	}
	if !units.IsValid(*speedUnit) {
		log.Fatalf("invalid units %q (valid: %v)", *speedUnit, units.ValidUnits)
	}

	scenario, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}

	cfg := params.DefaultFilteringParams()
	if *paramsPath != "" {
		overlay, err := params.Load(*paramsPath)
		if err != nil {
			log.Fatalf("load params: %v", err)
		}
		cfg = params.Merge(cfg, overlay)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid params: %v", err)
	}

	run(scenario, cfg, *speedUnit)
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

func run(s *Scenario, cfg *params.FilteringParams, speedUnit string) {
	network, currentLanes := buildNetwork(s)
	objects := buildObjects(s)
	egoPos := r2.Vec{X: s.Ego.X, Y: s.Ego.Y}

	filterParams := cfg.ResolveFiltering()
	filtered := safetyfilter.FilterObjects(objects, network, currentLanes, egoPos, filterParams)
	fmt.Printf("objects: %d perceived, %d after filtering\n", len(objects), len(filtered))

	for _, obj := range filtered {
		speed := units.ConvertSpeed(obj.PlanarSpeed(), speedUnit)
		fmt.Printf("  %s  %-10s  %6.1f %s\n",
			obj.ObjectID, perception.HighestProbLabel(obj.Classifications), speed, speedUnit)
	}

	target := safetyfilter.CreateTargetObjectsOnLane(currentLanes, network, filtered, filterParams)
	fmt.Printf("lane buckets: current=%d left=%d right=%d\n",
		len(target.OnCurrentLane), len(target.OnLeftLane), len(target.OnRightLane))

	pathCount := 0
	for _, bucket := range [][]safetyfilter.ExtendedObject{
		target.OnCurrentLane, target.OnLeftLane, target.OnRightLane,
	} {
		for i := range bucket {
			pathCount += len(safetyfilter.PredictedPathsFromObject(
				&bucket[i], filterParams.UseAllPredictedPaths))
		}
	}
	fmt.Printf("predicted paths considered: %d\n", pathCount)

	egoPath := safetyfilter.CreatePredictedPath(
		cfg.ResolveEgoPath(), network.CenterlinePath(currentLanes, 0, 0),
		perception.Pose{Position: egoPos, Yaw: s.Ego.Yaw},
		s.Ego.Speed, s.Ego.SegmentIndex)
	fmt.Printf("ego projection: %d samples", len(egoPath))
	if len(egoPath) > 0 {
		last := egoPath[len(egoPath)-1]
		fmt.Printf(", final pose (%.1f, %.1f) at t=%.1fs, %.1f %s",
			last.Pose.Position.X, last.Pose.Position.Y, last.Time,
			units.ConvertSpeed(last.Velocity, speedUnit), speedUnit)
	}
	fmt.Println()
}

func buildNetwork(s *Scenario) (*route.StaticNetwork, []route.Lanelet) {
	line := make(route.Centerline, len(s.Centerline))
	for i, p := range s.Centerline {
		line[i] = route.PathPoint{
			Pose:   perception.Pose{Position: r2.Vec{X: p.X, Y: p.Y}},
			LaneID: p.LaneID,
		}
	}

	network := &route.StaticNetwork{
		Line:          line,
		Left:          map[int64][]route.Lanelet{},
		Right:         map[int64][]route.Lanelet{},
		LeftOpposite:  map[int64][]route.Lanelet{},
		RightOpposite: map[int64][]route.Lanelet{},
	}

	var currentLanes []route.Lanelet
	for _, spec := range s.Lanelets {
		llt := route.Lanelet{ID: spec.ID, Boundary: ringToVecs(spec.Ring)}
		switch spec.Side {
		case "current":
			currentLanes = append(currentLanes, llt)
		case "left":
			appendForCurrent(network.Left, s, llt)
		case "right":
			appendForCurrent(network.Right, s, llt)
		case "left_opposite":
			appendForCurrent(network.LeftOpposite, s, llt)
		case "right_opposite":
			appendForCurrent(network.RightOpposite, s, llt)
		default:
			log.Fatalf("lanelet %d: unknown side %q", spec.ID, spec.Side)
		}
	}
	return network, currentLanes
}

// appendForCurrent registers an adjacent lanelet against every current
// lanelet in the scenario.
func appendForCurrent(table map[int64][]route.Lanelet, s *Scenario, llt route.Lanelet) {
	for _, spec := range s.Lanelets {
		if spec.Side == "current" {
			table[spec.ID] = append(table[spec.ID], llt)
		}
	}
}

func ringToVecs(ring [][2]float64) []r2.Vec {
	out := make([]r2.Vec, len(ring))
	for i, p := range ring {
		out[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	return out
}

func buildObjects(s *Scenario) []perception.PredictedObject {
	objects := make([]perception.PredictedObject, 0, len(s.Objects))
	for _, spec := range s.Objects {
		length := spec.Length
		width := spec.Width
		if length == 0 {
			length = 4.5
		}
		if width == 0 {
			width = 1.8
		}

		obj := perception.PredictedObject{
			ObjectID: uuid.New(),
			Pose:     perception.Pose{Position: r2.Vec{X: spec.X, Y: spec.Y}, Yaw: spec.Yaw},
			Twist:    perception.Twist{Linear: r2.Vec{X: spec.VX, Y: spec.VY}},
			Shape:    perception.Shape{Type: perception.ShapeBoundingBox, Length: length, Width: width},
			Classifications: []perception.Classification{
				{Class: perception.ObjectClass(spec.Class), Probability: 1},
			},
		}
		for _, ps := range spec.Paths {
			path := perception.PredictedPath{Confidence: ps.Confidence}
			for _, pt := range ps.Points {
				path.Points = append(path.Points, perception.PredictedPathPoint{
					TimeOffset: pt[0],
					Pose:       perception.Pose{Position: r2.Vec{X: pt[1], Y: pt[2]}},
				})
			}
			obj.PredictedPaths = append(obj.PredictedPaths, path)
		}
		objects = append(objects, obj)
	}
	return objects
}
