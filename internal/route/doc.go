// Package route provides curvilinear route geometry for the filtering
// pipeline: signed arc length along a centerline, pose interpolation at an
// arc-length coordinate, frenet conversion, and the lanelet/lane-network
// collaborator contract.
//
// The road network itself is out of scope; implementations of LaneNetwork
// supply centerline windows, lanelet adjacency, and boundary rings.
// StaticNetwork is an in-memory implementation for tests and tools.
//
// No SQL/database code is allowed in this package.
package route
