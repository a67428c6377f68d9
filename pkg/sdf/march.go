package sdf

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// Config bounds the marching loops. Exceeding a bound is the normal
// "no hit" outcome, never an error.
type Config struct {
	MaxSteps    int     // primary ray step budget
	ShadowSteps int     // reduced budget for shadow and occlusion probes
	MaxDistance float64 // rays past this distance miss
	Epsilon     float64 // surface hit threshold in scene units
}

// DefaultConfig returns marching bounds suitable for scenes a few tens of
// units across
func DefaultConfig() Config {
	return Config{
		MaxSteps:    128,
		ShadowSteps: 64,
		MaxDistance: 100,
		Epsilon:     1e-3,
	}
}

// MarchResult reports where a marched ray ended up. HitID is NoHit for a
// miss, in which case Distance is the marched distance when the budget
// ran out.
type MarchResult struct {
	Distance float64
	HitID    int
	Steps    int
}

// Hit reports whether the march reached a surface
func (r MarchResult) Hit() bool {
	return r.HitID != NoHit
}

// Marcher sphere-traces rays through a field
type Marcher struct {
	field  *Field
	config Config
}

// NewMarcher creates a marcher over the given field
func NewMarcher(field *Field, config Config) *Marcher {
	return &Marcher{field: field, config: config}
}

// Field returns the field the marcher traverses
func (m *Marcher) Field() *Field {
	return m.field
}

// Config returns the marching bounds
func (m *Marcher) Config() Config {
	return m.config
}

// March sphere-traces a ray from t=0, advancing by the scene distance at
// each step. The classic unconditional step guarantees no overshoot past
// the nearest surface.
func (m *Marcher) March(ray core.Ray) MarchResult {
	t := 0.0
	for step := 0; step < m.config.MaxSteps; step++ {
		d, id := m.field.MapScene(ray.At(t))
		if d < m.config.Epsilon {
			return MarchResult{Distance: t, HitID: id, Steps: step}
		}
		t += d
		if t > m.config.MaxDistance {
			return MarchResult{Distance: t, HitID: NoHit, Steps: step}
		}
	}
	return MarchResult{Distance: t, HitID: NoHit, Steps: m.config.MaxSteps}
}

// MarchInterior sphere-traces a ray that starts inside a shape, stepping by
// the interior distance until it reaches the exit surface. Inside a union
// the scene distance is negative and its magnitude is a lower bound on the
// distance to every containing boundary, so the unconditional step remains
// safe. HitID reports the shape whose surface the ray exits through.
func (m *Marcher) MarchInterior(ray core.Ray) MarchResult {
	t := 0.0
	for step := 0; step < m.config.MaxSteps; step++ {
		d, id := m.field.MapScene(ray.At(t))
		if -d < m.config.Epsilon {
			return MarchResult{Distance: t, HitID: id, Steps: step}
		}
		t -= d
		if t > m.config.MaxDistance {
			return MarchResult{Distance: t, HitID: NoHit, Steps: step}
		}
	}
	return MarchResult{Distance: t, HitID: NoHit, Steps: m.config.MaxSteps}
}

// shadowStartOffset skips the immediate neighborhood of the originating
// surface so the shadow ray does not re-hit it
const shadowStartOffset = 0.02

// SoftShadow marches from a surface point toward the light and returns a
// visibility factor in [0,1]. The penumbra estimate is the classic
// min(k*h/t) trick: the closer the ray grazes an occluder relative to how
// far it has traveled, the darker the shadow. softness (k) sharpens the
// falloff as it grows.
func (m *Marcher) SoftShadow(point, toLight core.Vec3, softness float64) float64 {
	visibility := 1.0
	t := shadowStartOffset
	for step := 0; step < m.config.ShadowSteps; step++ {
		h, _ := m.field.MapScene(point.Add(toLight.Multiply(t)))
		if h < m.config.Epsilon {
			return 0
		}
		visibility = min(visibility, softness*h/t)
		t += clamp(h, 0.01, 0.5)
		if t > m.config.MaxDistance {
			break
		}
	}
	return clamp(visibility, 0, 1)
}

// Occlusion parameters: a handful of samples marching up the normal with
// geometrically decaying weight.
const (
	occlusionSamples = 5
	occlusionStep    = 0.06
	occlusionDecay   = 0.6
	occlusionGain    = 1.5
)

// Occlusion estimates ambient occlusion at a surface point by comparing
// the SDF at increasing offsets along the normal with the free-space
// distance those offsets predict. Returns 1 for fully open, 0 for fully
// occluded.
func (m *Marcher) Occlusion(point, normal core.Vec3) float64 {
	occ := 0.0
	weight := 1.0
	for i := 1; i <= occlusionSamples; i++ {
		h := occlusionStep * float64(i)
		d, _ := m.field.MapScene(point.Add(normal.Multiply(h)))
		occ += (h - d) * weight
		weight *= occlusionDecay
	}
	return clamp(1-occlusionGain*occ, 0, 1)
}

// normalOffset is the finite-difference step for gradient estimation
const normalOffset = 1e-4

// Normal estimates the surface normal at a point using the tetrahedral
// four-sample gradient of the scene SDF. Falls back to +Y when the
// gradient vanishes (e.g. the exact center of a symmetric shape).
func (f *Field) Normal(point core.Vec3) core.Vec3 {
	e1 := core.NewVec3(1, -1, -1)
	e2 := core.NewVec3(-1, -1, 1)
	e3 := core.NewVec3(-1, 1, -1)
	e4 := core.NewVec3(1, 1, 1)

	grad := core.NewVec3(0, 0, 0)
	for _, e := range []core.Vec3{e1, e2, e3, e4} {
		d, _ := f.MapScene(point.Add(e.Multiply(normalOffset)))
		grad = grad.Add(e.Multiply(d))
	}

	if grad.LengthSquared() < 1e-18 || math.IsNaN(grad.LengthSquared()) {
		return core.NewVec3(0, 1, 0)
	}
	return grad.Normalize()
}
