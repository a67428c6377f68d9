package sdf

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/encoder"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

// NoHit is the sentinel shape id reported when a query finds no surface
const NoHit = -1

// minShapeScale guards the local-frame division against degenerate sizes
const minShapeScale = 1e-6

// Field evaluates the scene's signed distance function over an immutable
// set of shape records. A Field is built once per frame from the encoded
// scene buffer and is safe for concurrent reads.
type Field struct {
	shapes []scene.ShapeRecord
	byID   map[int]*scene.ShapeRecord
}

// NewField creates a field over the given shape records
func NewField(shapes []scene.ShapeRecord) *Field {
	f := &Field{shapes: shapes, byID: make(map[int]*scene.ShapeRecord, len(shapes))}
	for i := range shapes {
		f.byID[shapes[i].ID] = &shapes[i]
	}
	return f
}

// NewFieldFromBuffer decodes the active shapes of an encoded scene buffer
// into a field
func NewFieldFromBuffer(buf *encoder.SceneBuffer) *Field {
	return NewField(buf.DecodeShapes())
}

// Shape returns the shape record with the given id
func (f *Field) Shape(id int) (*scene.ShapeRecord, bool) {
	s, ok := f.byID[id]
	return s, ok
}

// Shapes returns the field's shape records in slot order
func (f *Field) Shapes() []scene.ShapeRecord {
	return f.shapes
}

// Evaluate returns the signed distance from a world-space point to one
// shape. The point is moved into the shape's local frame (translate,
// inverse-rotate via the quaternion conjugate, divide by size), evaluated
// against the unit primitive, and the distance is scaled back by the
// smallest size component so it stays a conservative bound under
// nonuniform scaling.
func (f *Field) Evaluate(point core.Vec3, s *scene.ShapeRecord) float64 {
	local := s.Orientation.Conjugate().Rotate(point.Subtract(s.Position))
	size := s.Size.Clamp(minShapeScale, math.Inf(1))
	local = local.DivideVec(size)

	var d float64
	switch s.Type {
	case scene.ShapeSphere:
		d = sdfSphere(local)
	case scene.ShapeBox:
		d = sdfBox(local)
	case scene.ShapeTorus:
		d = sdfTorus(local)
	case scene.ShapeCylinder:
		d = sdfCylinder(local)
	case scene.ShapeCone:
		d = sdfCone(local)
	case scene.ShapeCapsule:
		d = sdfCapsule(local)
	case scene.ShapePlane:
		d = sdfPlane(local)
	default:
		// Unknown tags behave as empty space so a corrupt record cannot
		// trap the marcher.
		return maxFieldDistance
	}
	return d * size.MinComponent()
}

// maxFieldDistance is returned for empty scenes and unknown shape tags
const maxFieldDistance = 1e9

// MapScene returns the minimum signed distance over all shapes at a point,
// along with the id of the minimizing shape. When two shapes are exactly
// equidistant the lowest shape id wins, keeping silhouette edges stable
// regardless of list order.
func (f *Field) MapScene(point core.Vec3) (float64, int) {
	best := maxFieldDistance
	bestID := NoHit
	for i := range f.shapes {
		s := &f.shapes[i]
		d := f.Evaluate(point, s)
		if d < best || (d == best && bestID != NoHit && s.ID < bestID) {
			best = d
			bestID = s.ID
		}
	}
	return best, bestID
}
