package perception

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/geom"
)

// ShapeType discriminates the supported shape descriptors.
type ShapeType int

const (
	// ShapeBoundingBox is an oriented rectangle described by length and width.
	ShapeBoundingBox ShapeType = iota
	// ShapeCylinder is a circle described by a radius, approximated by a
	// regular polygon for intersection tests.
	ShapeCylinder
	// ShapePolygon is an explicit footprint ring in the object's local frame.
	ShapePolygon
)

// cylinderVertices is the vertex count of the regular polygon used to
// approximate a cylindrical footprint.
const cylinderVertices = 16

// Shape describes an object's physical extent. Only the fields for the
// active Type are meaningful.
type Shape struct {
	Type ShapeType

	// Bounding box extents (metres). Length runs along the heading axis.
	Length float64
	Width  float64

	// Cylinder radius (metres).
	Radius float64

	// Local-frame footprint ring for ShapePolygon, centred on the pose.
	LocalFootprint []r2.Vec
}

// FootprintAt builds the oriented footprint polygon of a shape placed at
// the given pose. Degenerate descriptors (zero extents, empty local
// footprint) yield an empty polygon.
func FootprintAt(pose Pose, shape Shape) geom.Polygon {
	switch shape.Type {
	case ShapeBoundingBox:
		return boundingBoxFootprint(pose, shape.Length, shape.Width)
	case ShapeCylinder:
		return cylinderFootprint(pose, shape.Radius)
	case ShapePolygon:
		return localFootprint(pose, shape.LocalFootprint)
	default:
		return nil
	}
}

// boundingBoxFootprint returns the four corners of an oriented rectangle,
// wound counter-clockwise from front-left.
func boundingBoxFootprint(pose Pose, length, width float64) geom.Polygon {
	if length <= 0 || width <= 0 {
		return nil
	}
	halfL := length / 2
	halfW := width / 2
	corners := []r2.Vec{
		{X: halfL, Y: halfW},
		{X: -halfL, Y: halfW},
		{X: -halfL, Y: -halfW},
		{X: halfL, Y: -halfW},
	}
	return localFootprint(pose, corners)
}

// cylinderFootprint approximates a circle of the given radius by a regular
// polygon centred on the pose position.
func cylinderFootprint(pose Pose, radius float64) geom.Polygon {
	if radius <= 0 {
		return nil
	}
	ring := make(geom.Polygon, 0, cylinderVertices)
	for i := 0; i < cylinderVertices; i++ {
		angle := 2 * math.Pi * float64(i) / cylinderVertices
		ring = append(ring, r2.Vec{
			X: pose.Position.X + radius*math.Cos(angle),
			Y: pose.Position.Y + radius*math.Sin(angle),
		})
	}
	return ring
}

// localFootprint rotates a local-frame ring by the pose yaw and translates
// it to the pose position.
func localFootprint(pose Pose, local []r2.Vec) geom.Polygon {
	if len(local) == 0 {
		return nil
	}
	ring := make(geom.Polygon, 0, len(local))
	for _, v := range local {
		rotated := r2.Rotate(v, pose.Yaw, r2.Vec{})
		ring = append(ring, r2.Add(pose.Position, rotated))
	}
	return ring
}
