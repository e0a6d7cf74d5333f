// Package geom provides the 2D polygon predicates used by the object
// filtering pipeline: strict point-in-polygon containment, polygon
// disjointness, ring closing, and centroids.
//
// Conventions: polygons are rings of r2.Vec vertices in world frame,
// wound in either direction, open or closed (a closed ring repeats its
// first vertex). Containment is strict-interior: a point on the boundary
// is NOT contained. Disjointness counts touching as intersecting, so two
// polygons sharing only an edge or a vertex are not disjoint.
//
// No SQL/database code is allowed in this package.
package geom
