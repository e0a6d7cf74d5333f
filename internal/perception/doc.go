// Package perception defines the perceived-object data model consumed by
// the filtering pipeline: object snapshots with pose, twist, acceleration,
// shape, semantic classification, and externally produced predicted paths.
//
// Objects are immutable per planning cycle: the perception source owns
// them, this module only reads them. The package also resolves an object's
// highest-probability semantic label and builds oriented footprint polygons
// from shape descriptors.
//
// No SQL/database code is allowed in this package.
package perception
