package shading

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/encoder"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
	"github.com/raydist/go-sdf-raytracer/pkg/sdf"
)

// FrameParams are the per-frame shading inputs supplied by the
// surrounding application
type FrameParams struct {
	LightDirection       core.Vec3 // unit vector from the scene toward the light
	LightColor           core.Vec3
	AmbientColor         core.Vec3
	BackgroundColor      core.Vec3
	ShadowSoftness       float64
	EnvironmentEnabled   bool
	EnvironmentIntensity float64
	Time                 float64
}

// DefaultFrameParams returns a daylight setup with a soft gradient sky
func DefaultFrameParams() FrameParams {
	return FrameParams{
		LightDirection:       core.NewVec3(0.6, 0.8, 0.4).Normalize(),
		LightColor:           core.NewVec3(1.0, 0.96, 0.88).Multiply(2.5),
		AmbientColor:         core.NewVec3(0.12, 0.14, 0.18),
		BackgroundColor:      core.NewVec3(0.5, 0.7, 0.9),
		ShadowSoftness:       16,
		EnvironmentEnabled:   true,
		EnvironmentIntensity: 1.0,
	}
}

// Bounce decision thresholds: metals and very smooth surfaces spawn a
// reflection ray.
const (
	reflectRoughnessMax = 0.15
	reflectMetallicMin  = 0.5
)

// surfaceOffset pushes secondary ray origins off the surface they spawned
// from so the next march does not immediately re-hit it
const surfaceOffset = 0.02

// Shader computes the color of a single ray against an encoded scene.
// It is immutable after construction and safe for concurrent use by
// pixel tasks.
type Shader struct {
	marcher    *sdf.Marcher
	materials  []scene.MaterialRecord
	params     FrameParams
	maxBounces int
}

// NewShader builds a shader over a marcher and the material rows of the
// frame's scene buffer. maxBounces bounds the reflection/refraction depth;
// zero disables secondary rays entirely.
func NewShader(marcher *sdf.Marcher, buf *encoder.SceneBuffer, params FrameParams, maxBounces int) *Shader {
	materials := make([]scene.MaterialRecord, buf.ActiveMaterials)
	for i := range materials {
		materials[i] = buf.DecodeMaterial(i)
	}
	return &Shader{
		marcher:    marcher,
		materials:  materials,
		params:     params,
		maxBounces: maxBounces,
	}
}

// materialFor resolves a material id, substituting the default material
// for dangling references
func (s *Shader) materialFor(id int) scene.MaterialRecord {
	if id < 0 || id >= len(s.materials) {
		return scene.DefaultMaterial()
	}
	return s.materials[id]
}

// Environment returns the radiance of a ray that escapes the scene: a
// vertical gradient sky when the environment is enabled, the flat
// background color otherwise
func (s *Shader) Environment(direction core.Vec3) core.Vec3 {
	if !s.params.EnvironmentEnabled {
		return s.params.BackgroundColor
	}
	t := 0.5 * (direction.Normalize().Y + 1)
	horizon := core.NewVec3(1.0, 1.0, 1.0)
	zenith := s.params.BackgroundColor
	return horizon.Lerp(zenith, t).Multiply(s.params.EnvironmentIntensity)
}

// bounceKind classifies what secondary ray a surface spawns
type bounceKind int

const (
	bounceNone bounceKind = iota
	bounceReflect
	bounceRefract
)

// Shade computes the final HDR radiance for a camera ray. Reflection and
// refraction are unrolled into a loop carrying a throughput accumulator
// and a remaining-bounce counter; the depth bound is the only termination
// guarantee, since the geometry offers none. The loop tracks which medium
// the ray travels in: each refraction crosses a surface, and rays inside a
// shape march against the interior distance until the exit surface.
func (s *Shader) Shade(ray core.Ray) core.Vec3 {
	color := core.NewVec3(0, 0, 0)
	throughput := core.NewVec3(1, 1, 1)
	inside := false

	for remaining := s.maxBounces; ; remaining-- {
		var result sdf.MarchResult
		if inside {
			result = s.marcher.MarchInterior(ray)
		} else {
			result = s.marcher.March(ray)
		}
		if !result.Hit() {
			color = color.Add(throughput.MultiplyVec(s.Environment(ray.Direction)))
			break
		}

		point := ray.At(result.Distance)
		field := s.marcher.Field()
		normal := field.Normal(point)

		var material scene.MaterialRecord
		if shape, ok := field.Shape(result.HitID); ok {
			material = s.materialFor(shape.MaterialID)
		} else {
			material = scene.DefaultMaterial()
		}

		// An exit surface seen from inside the medium receives no direct
		// lighting; only exterior hits shade locally.
		if !inside {
			color = color.Add(throughput.MultiplyVec(s.surfaceColor(point, normal, ray.Direction, material)))
		}

		kind, direction, weight := s.bounce(ray.Direction, normal, material)
		if kind == bounceNone {
			break
		}
		if remaining <= 0 {
			// Out of depth: the would-be secondary ray samples the
			// environment directly instead of marching.
			color = color.Add(throughput.MultiplyVec(weight).MultiplyVec(s.Environment(direction)))
			break
		}

		throughput = throughput.MultiplyVec(weight)
		if kind == bounceRefract {
			inside = !inside
		}

		// Push the secondary origin off the surface on the side it
		// travels toward, so the next march does not re-hit it.
		offset := normal.Multiply(surfaceOffset)
		origin := point.Add(offset)
		if direction.Dot(normal) < 0 {
			origin = point.Subtract(offset)
		}
		ray = core.NewRay(origin, direction)
	}

	return color
}

// surfaceColor is the local shading at a hit point: ambient modulated by
// occlusion, Cook-Torrance direct lighting modulated by the soft shadow,
// and the material's own emission
func (s *Shader) surfaceColor(point, normal, rayDir core.Vec3, material scene.MaterialRecord) core.Vec3 {
	view := rayDir.Negate()
	light := s.params.LightDirection

	occlusion := s.marcher.Occlusion(point, normal)
	ambient := s.params.AmbientColor.MultiplyVec(material.Albedo).Multiply(occlusion)

	direct := core.NewVec3(0, 0, 0)
	nl := normal.Dot(light)
	if nl > 0 {
		shadow := s.marcher.SoftShadow(point, light, s.params.ShadowSoftness)
		if shadow > 0 {
			brdf := cookTorrance(normal, view, light, material.Albedo, material.Metallic, material.Roughness)
			direct = brdf.MultiplyVec(s.params.LightColor).Multiply(nl * shadow)
		}
	}

	emissive := material.Emissive.Multiply(material.EmissiveFactor)

	return ambient.Add(direct).Add(emissive)
}

// bounce decides whether a surface spawns a secondary ray and with what
// throughput weight. Transparent materials refract by Snell's law using
// the material's index of refraction, falling back to reflection on total
// internal reflection. Metallic or very smooth surfaces reflect with a
// Fresnel-weighted throughput.
func (s *Shader) bounce(rayDir, normal core.Vec3, material scene.MaterialRecord) (bounceKind, core.Vec3, core.Vec3) {
	incident := rayDir.Normalize()

	if material.Transparent {
		entering := incident.Dot(normal) < 0
		outward := normal
		eta := 1.0 / material.IOR
		if !entering {
			outward = normal.Negate()
			eta = material.IOR
		}
		if refracted, ok := refract(incident, outward, eta); ok {
			return bounceRefract, refracted, material.Albedo
		}
		// Total internal reflection: continue as a mirror bounce.
		return bounceReflect, reflect(incident, outward), material.Albedo
	}

	if material.Metallic >= reflectMetallicMin || material.Roughness < reflectRoughnessMax {
		cosTheta := max(normal.Dot(incident.Negate()), 0)
		f0 := baseReflectance(material.Albedo, material.Metallic)
		weight := fresnelSchlick(cosTheta, f0)
		return bounceReflect, reflect(incident, normal), weight
	}

	return bounceNone, core.Vec3{}, core.Vec3{}
}

// reflect mirrors v about the surface normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refract bends v through a surface with normal n by the ratio eta of
// refractive indices. Returns false on total internal reflection.
func refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosTheta := min(v.Negate().Dot(n), 1.0)
	k := 1 - eta*eta*(1-cosTheta*cosTheta)
	if k < 0 {
		return core.Vec3{}, false
	}
	perp := v.Add(n.Multiply(cosTheta)).Multiply(eta)
	parallel := n.Multiply(-math.Sqrt(k))
	return perp.Add(parallel).Normalize(), true
}
