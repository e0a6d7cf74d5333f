// Package safetyfilter prepares the perceived-object set a safety check
// consumes: it gates objects by velocity, semantic class, and longitudinal
// window along the route, partitions them by lanelet membership, and
// projects both ego and other-agent motion forward in time at a fixed
// resolution.
//
// Every operation is a pure, synchronous computation over read-only
// snapshots; degenerate inputs (no objects, no lanelets, no centerline)
// yield empty outputs rather than errors, because the per-cycle planning
// loop prefers an empty result over an aborted cycle. The package never
// retains references across cycles.
//
// The two top-level entry points are FilterObjects and
// CreateTargetObjectsOnLane.
//
// No SQL/database code is allowed in this package.
package safetyfilter
