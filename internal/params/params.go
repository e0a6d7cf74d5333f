// Package params loads filtering and projection parameters from JSON.
// Files use pointer fields with omitempty so partial configs overlay the
// defaults; the same schema can drive startup configuration and runtime
// updates.
package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/pathsafety/internal/perception"
	"github.com/banshee-data/pathsafety/internal/safetyfilter"
)

// maxFileSize caps config files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// FilteringParams is the JSON schema for object-filtering thresholds.
// Omitted fields keep their default values, so partial configs are safe.
type FilteringParams struct {
	IgnoreObjectVelocityThreshold *float64 `json:"ignore_object_velocity_threshold,omitempty"`
	ObjectCheckForwardDistance    *float64 `json:"object_check_forward_distance,omitempty"`
	ObjectCheckBackwardDistance   *float64 `json:"object_check_backward_distance,omitempty"`

	CheckCar        *bool `json:"check_car,omitempty"`
	CheckTruck      *bool `json:"check_truck,omitempty"`
	CheckBus        *bool `json:"check_bus,omitempty"`
	CheckTrailer    *bool `json:"check_trailer,omitempty"`
	CheckUnknown    *bool `json:"check_unknown,omitempty"`
	CheckBicycle    *bool `json:"check_bicycle,omitempty"`
	CheckMotorcycle *bool `json:"check_motorcycle,omitempty"`
	CheckPedestrian *bool `json:"check_pedestrian,omitempty"`

	CheckCurrentLane    *bool `json:"check_current_lane,omitempty"`
	CheckLeftLane       *bool `json:"check_left_lane,omitempty"`
	CheckRightLane      *bool `json:"check_right_lane,omitempty"`
	IncludeOppositeLane *bool `json:"include_opposite_lane,omitempty"`
	InvertOppositeLane  *bool `json:"invert_opposite_lane,omitempty"`

	SafetyCheckTimeHorizon    *float64 `json:"safety_check_time_horizon,omitempty"`
	SafetyCheckTimeResolution *float64 `json:"safety_check_time_resolution,omitempty"`

	// Ego projection params
	MinSlowDownSpeed     *float64 `json:"min_slow_down_speed,omitempty"`
	EgoAcceleration      *float64 `json:"ego_acceleration,omitempty"`
	EgoTimeHorizon       *float64 `json:"ego_time_horizon,omitempty"`
	EgoTimeResolution    *float64 `json:"ego_time_resolution,omitempty"`
	UseAllPredictedPaths *bool    `json:"use_all_predicted_paths,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }

// DefaultFilteringParams returns the canonical defaults: all vehicle
// classes considered, pedestrians and unknowns ignored, a 100m/30m window,
// and a 5s/0.5s safety-check sampling grid.
func DefaultFilteringParams() *FilteringParams {
	return &FilteringParams{
		IgnoreObjectVelocityThreshold: ptrFloat64(1.0),
		ObjectCheckForwardDistance:    ptrFloat64(100),
		ObjectCheckBackwardDistance:   ptrFloat64(30),

		CheckCar:        ptrBool(true),
		CheckTruck:      ptrBool(true),
		CheckBus:        ptrBool(true),
		CheckTrailer:    ptrBool(true),
		CheckUnknown:    ptrBool(false),
		CheckBicycle:    ptrBool(true),
		CheckMotorcycle: ptrBool(true),
		CheckPedestrian: ptrBool(false),

		CheckCurrentLane:    ptrBool(true),
		CheckLeftLane:       ptrBool(true),
		CheckRightLane:      ptrBool(true),
		IncludeOppositeLane: ptrBool(false),
		InvertOppositeLane:  ptrBool(false),

		SafetyCheckTimeHorizon:    ptrFloat64(5),
		SafetyCheckTimeResolution: ptrFloat64(0.5),

		MinSlowDownSpeed:     ptrFloat64(1.39), // ~5 km/h
		EgoAcceleration:      ptrFloat64(1.0),
		EgoTimeHorizon:       ptrFloat64(5),
		EgoTimeResolution:    ptrFloat64(0.5),
		UseAllPredictedPaths: ptrBool(false),
	}
}

// Load reads a FilteringParams overlay from a JSON file. The file must
// have a .json extension and stay under the size cap. Fields omitted from
// the file are left nil so Merge can fill them from defaults.
func Load(path string) (*FilteringParams, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat params file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("params file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var p FilteringParams
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}
	return &p, nil
}

// Merge overlays non-nil fields of overlay onto base and returns base.
func Merge(base, overlay *FilteringParams) *FilteringParams {
	if overlay == nil {
		return base
	}
	overlayFloat := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}
	overlayBool := func(dst **bool, src *bool) {
		if src != nil {
			*dst = src
		}
	}

	overlayFloat(&base.IgnoreObjectVelocityThreshold, overlay.IgnoreObjectVelocityThreshold)
	overlayFloat(&base.ObjectCheckForwardDistance, overlay.ObjectCheckForwardDistance)
	overlayFloat(&base.ObjectCheckBackwardDistance, overlay.ObjectCheckBackwardDistance)

	overlayBool(&base.CheckCar, overlay.CheckCar)
	overlayBool(&base.CheckTruck, overlay.CheckTruck)
	overlayBool(&base.CheckBus, overlay.CheckBus)
	overlayBool(&base.CheckTrailer, overlay.CheckTrailer)
	overlayBool(&base.CheckUnknown, overlay.CheckUnknown)
	overlayBool(&base.CheckBicycle, overlay.CheckBicycle)
	overlayBool(&base.CheckMotorcycle, overlay.CheckMotorcycle)
	overlayBool(&base.CheckPedestrian, overlay.CheckPedestrian)

	overlayBool(&base.CheckCurrentLane, overlay.CheckCurrentLane)
	overlayBool(&base.CheckLeftLane, overlay.CheckLeftLane)
	overlayBool(&base.CheckRightLane, overlay.CheckRightLane)
	overlayBool(&base.IncludeOppositeLane, overlay.IncludeOppositeLane)
	overlayBool(&base.InvertOppositeLane, overlay.InvertOppositeLane)

	overlayFloat(&base.SafetyCheckTimeHorizon, overlay.SafetyCheckTimeHorizon)
	overlayFloat(&base.SafetyCheckTimeResolution, overlay.SafetyCheckTimeResolution)

	overlayFloat(&base.MinSlowDownSpeed, overlay.MinSlowDownSpeed)
	overlayFloat(&base.EgoAcceleration, overlay.EgoAcceleration)
	overlayFloat(&base.EgoTimeHorizon, overlay.EgoTimeHorizon)
	overlayFloat(&base.EgoTimeResolution, overlay.EgoTimeResolution)
	overlayBool(&base.UseAllPredictedPaths, overlay.UseAllPredictedPaths)

	return base
}

// Validate checks the invariants the pipeline relies on: a non-negative
// velocity floor, non-negative window distances, and positive sampling
// grids.
func (p *FilteringParams) Validate() error {
	if v := p.IgnoreObjectVelocityThreshold; v != nil && *v < 0 {
		return fmt.Errorf("ignore_object_velocity_threshold must be >= 0, got %v", *v)
	}
	if v := p.ObjectCheckForwardDistance; v != nil && *v < 0 {
		return fmt.Errorf("object_check_forward_distance must be >= 0, got %v", *v)
	}
	if v := p.ObjectCheckBackwardDistance; v != nil && *v < 0 {
		return fmt.Errorf("object_check_backward_distance must be >= 0, got %v", *v)
	}
	if v := p.SafetyCheckTimeHorizon; v != nil && *v <= 0 {
		return fmt.Errorf("safety_check_time_horizon must be > 0, got %v", *v)
	}
	if v := p.SafetyCheckTimeResolution; v != nil && *v <= 0 {
		return fmt.Errorf("safety_check_time_resolution must be > 0, got %v", *v)
	}
	if v := p.EgoTimeHorizon; v != nil && *v <= 0 {
		return fmt.Errorf("ego_time_horizon must be > 0, got %v", *v)
	}
	if v := p.EgoTimeResolution; v != nil && *v <= 0 {
		return fmt.Errorf("ego_time_resolution must be > 0, got %v", *v)
	}
	return nil
}

// ResolveFiltering flattens the params into the value struct the pipeline
// consumes. Nil fields resolve to the zero value; callers normally merge
// onto DefaultFilteringParams first.
func (p *FilteringParams) ResolveFiltering() safetyfilter.ObjectsFilteringParams {
	return safetyfilter.ObjectsFilteringParams{
		IgnoreObjectVelocityThreshold: deref(p.IgnoreObjectVelocityThreshold),
		ObjectCheckForwardDistance:    deref(p.ObjectCheckForwardDistance),
		ObjectCheckBackwardDistance:   deref(p.ObjectCheckBackwardDistance),
		ObjectTypesToCheck: perception.ClassCheckSet{
			CheckCar:        derefBool(p.CheckCar),
			CheckTruck:      derefBool(p.CheckTruck),
			CheckBus:        derefBool(p.CheckBus),
			CheckTrailer:    derefBool(p.CheckTrailer),
			CheckUnknown:    derefBool(p.CheckUnknown),
			CheckBicycle:    derefBool(p.CheckBicycle),
			CheckMotorcycle: derefBool(p.CheckMotorcycle),
			CheckPedestrian: derefBool(p.CheckPedestrian),
		},
		ObjectLaneConfiguration: safetyfilter.LaneConfiguration{
			CheckCurrentLane: derefBool(p.CheckCurrentLane),
			CheckLeftLane:    derefBool(p.CheckLeftLane),
			CheckRightLane:   derefBool(p.CheckRightLane),
		},
		IncludeOppositeLane:       derefBool(p.IncludeOppositeLane),
		InvertOppositeLane:        derefBool(p.InvertOppositeLane),
		SafetyCheckTimeHorizon:    deref(p.SafetyCheckTimeHorizon),
		SafetyCheckTimeResolution: deref(p.SafetyCheckTimeResolution),
		UseAllPredictedPaths:      derefBool(p.UseAllPredictedPaths),
	}
}

// ResolveEgoPath flattens the ego-projection fields.
func (p *FilteringParams) ResolveEgoPath() safetyfilter.EgoPredictedPathParams {
	return safetyfilter.EgoPredictedPathParams{
		MinSlowDownSpeed: deref(p.MinSlowDownSpeed),
		Acceleration:     deref(p.EgoAcceleration),
		TimeHorizon:      deref(p.EgoTimeHorizon),
		TimeResolution:   deref(p.EgoTimeResolution),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
