package scene

import (
	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// ShapeType identifies which closed-form distance function a shape uses.
// The set is closed: adding a kind means extending the evaluator switch.
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapeTorus
	ShapeCylinder
	ShapeCone
	ShapeCapsule
	ShapePlane
	shapeTypeCount
)

// String returns the lowercase name of the shape type
func (t ShapeType) String() string {
	switch t {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeTorus:
		return "torus"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	case ShapeCapsule:
		return "capsule"
	case ShapePlane:
		return "plane"
	}
	return "unknown"
}

// ParseShapeType converts a lowercase shape name into a ShapeType
func ParseShapeType(name string) (ShapeType, bool) {
	for t := ShapeSphere; t < shapeTypeCount; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// IsValid reports whether t is one of the supported shape kinds
func (t ShapeType) IsValid() bool {
	return t >= ShapeSphere && t < shapeTypeCount
}

// ShapeRecord describes one shape instance. The ID is unique and stable
// for the shape's lifetime; positions and orientations are mutated by the
// scene owner between frames.
type ShapeRecord struct {
	ID          int
	Type        ShapeType
	Position    core.Vec3
	Orientation core.Quat
	Size        core.Vec3
	MaterialID  int
}

// MaterialRecord describes the surface properties referenced by shapes.
// Texture slot indices of -1 mean no texture is bound.
type MaterialRecord struct {
	Albedo         core.Vec3
	Metallic       float64
	Roughness      float64
	Emissive       core.Vec3
	EmissiveFactor float64
	IOR            float64
	Transparent    bool
	AlbedoTexture  int
	NormalTexture  int
}

// NewMaterialRecord creates an opaque non-emissive material with unbound
// texture slots
func NewMaterialRecord(albedo core.Vec3, metallic, roughness float64) MaterialRecord {
	return MaterialRecord{
		Albedo:        albedo,
		Metallic:      metallic,
		Roughness:     roughness,
		IOR:           1.0,
		AlbedoTexture: -1,
		NormalTexture: -1,
	}
}

// DefaultMaterial returns the material substituted when a shape references
// a material slot that does not resolve
func DefaultMaterial() MaterialRecord {
	return NewMaterialRecord(core.NewVec3(0.7, 0.7, 0.7), 0.0, 0.8)
}
