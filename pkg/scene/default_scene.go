package scene

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// NewDefaultScene creates a showcase scene with every primitive kind,
// a mirror sphere, a glass sphere, and a ground plane
func NewDefaultScene() *Scene {
	s := NewScene()

	// Materials
	ground := NewMaterialRecord(core.NewVec3(0.48, 0.52, 0.45), 0.0, 0.9)
	red := NewMaterialRecord(core.NewVec3(0.75, 0.22, 0.18), 0.0, 0.45)
	blue := NewMaterialRecord(core.NewVec3(0.15, 0.28, 0.68), 0.0, 0.3)
	gold := NewMaterialRecord(core.NewVec3(0.85, 0.65, 0.25), 1.0, 0.25)
	mirror := NewMaterialRecord(core.NewVec3(0.92, 0.92, 0.95), 1.0, 0.02)

	glass := NewMaterialRecord(core.NewVec3(0.95, 0.98, 1.0), 0.0, 0.05)
	glass.Transparent = true
	glass.IOR = 1.5

	lamp := NewMaterialRecord(core.NewVec3(1.0, 0.9, 0.7), 0.0, 0.6)
	lamp.Emissive = core.NewVec3(1.0, 0.85, 0.6)
	lamp.EmissiveFactor = 4.0

	groundID := s.AddMaterial(ground)
	redID := s.AddMaterial(red)
	blueID := s.AddMaterial(blue)
	goldID := s.AddMaterial(gold)
	mirrorID := s.AddMaterial(mirror)
	glassID := s.AddMaterial(glass)
	lampID := s.AddMaterial(lamp)

	identity := core.IdentityQuat()
	uniform := func(r float64) core.Vec3 { return core.NewVec3(r, r, r) }

	// Ground plane through the origin, normal up
	s.AddShape(ShapePlane, core.NewVec3(0, 0, 0), identity, uniform(1), groundID)

	// A row of primitives on the ground
	s.AddShape(ShapeSphere, core.NewVec3(0, 0.6, -1), identity, uniform(0.6), mirrorID)
	s.AddShape(ShapeBox, core.NewVec3(-1.6, 0.4, -1.2), core.QuatFromAxisAngle(core.NewVec3(0, 1, 0), math.Pi/6), uniform(0.4), redID)
	s.AddShape(ShapeTorus, core.NewVec3(1.7, 0.35, -0.8),
		core.QuatFromAxisAngle(core.NewVec3(1, 0, 0), math.Pi/2.5), uniform(0.35), goldID)
	s.AddShape(ShapeCylinder, core.NewVec3(-0.8, 0.35, 0.2), identity, uniform(0.35), blueID)
	s.AddShape(ShapeCone, core.NewVec3(0.9, 0.4, 0.4), identity, uniform(0.4), redID)
	s.AddShape(ShapeCapsule, core.NewVec3(2.4, 0.4, 0.6),
		core.QuatFromAxisAngle(core.NewVec3(0, 0, 1), math.Pi/2), uniform(0.45), blueID)
	s.AddShape(ShapeSphere, core.NewVec3(0.4, 0.3, 0.9), identity, uniform(0.3), glassID)
	s.AddShape(ShapeSphere, core.NewVec3(-2.2, 0.5, 0.3), identity, uniform(0.25), lampID)

	// Orbit the glass and lamp spheres around the mirror sphere
	glassShape := 7
	lampShape := 8
	s.Animate = func(sc *Scene, elapsed float64) {
		if shape, ok := sc.Shape(glassShape); ok {
			angle := elapsed * 0.6
			shape.Position = core.NewVec3(1.2*math.Cos(angle), 0.3, 1.2*math.Sin(angle))
		}
		if shape, ok := sc.Shape(lampShape); ok {
			angle := elapsed*0.4 + math.Pi
			shape.Position = core.NewVec3(2.2*math.Cos(angle), 0.5, 2.2*math.Sin(angle))
		}
	}

	return s
}

// NewMirrorScene creates a minimal two-sphere scene: a perfect mirror facing
// a strongly colored diffuse sphere. Useful for verifying that reflection
// bounces contribute to the image.
func NewMirrorScene() *Scene {
	s := NewScene()

	mirror := NewMaterialRecord(core.NewVec3(0.95, 0.95, 0.95), 1.0, 0.0)
	red := NewMaterialRecord(core.NewVec3(0.9, 0.05, 0.05), 0.0, 0.8)

	mirrorID := s.AddMaterial(mirror)
	redID := s.AddMaterial(red)

	identity := core.IdentityQuat()
	s.AddShape(ShapeSphere, core.NewVec3(0, 0, -1), identity, core.NewVec3(0.5, 0.5, 0.5), mirrorID)
	s.AddShape(ShapeSphere, core.NewVec3(0, 0, 1), identity, core.NewVec3(0.5, 0.5, 0.5), redID)

	return s
}
