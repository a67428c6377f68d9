package shading

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// brdfEpsilon floors every BRDF denominator so grazing angles and zero
// roughness cannot produce NaN or Inf
const brdfEpsilon = 1e-4

// dielectricF0 is the normal-incidence reflectance for non-metals
var dielectricF0 = core.NewVec3(0.04, 0.04, 0.04)

// distributionGGX is the GGX/Trowbridge-Reitz normal distribution term
func distributionGGX(nh, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	d := nh*nh*(a2-1) + 1
	return a2 / max(math.Pi*d*d, brdfEpsilon)
}

// geometrySchlickGGX is the single-direction Smith visibility term with
// the direct-lighting k remapping
func geometrySchlickGGX(nv, roughness float64) float64 {
	r := roughness + 1
	k := r * r / 8
	return nv / max(nv*(1-k)+k, brdfEpsilon)
}

// geometrySmith combines the view and light masking-shadowing terms
func geometrySmith(nv, nl, roughness float64) float64 {
	return geometrySchlickGGX(nv, roughness) * geometrySchlickGGX(nl, roughness)
}

// fresnelSchlick is Schlick's approximation of the Fresnel reflectance
func fresnelSchlick(cosTheta float64, f0 core.Vec3) core.Vec3 {
	f := math.Pow(clamp(1-cosTheta, 0, 1), 5)
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(f))
}

// baseReflectance returns F0 for a material: a fixed dielectric
// reflectance blended toward the albedo as the surface becomes metallic
func baseReflectance(albedo core.Vec3, metallic float64) core.Vec3 {
	return dielectricF0.Lerp(albedo, metallic)
}

// cookTorrance evaluates the Cook-Torrance BRDF (specular microfacet lobe
// plus energy-conserving Lambertian diffuse) for the given directions.
// view and light both point away from the surface.
func cookTorrance(normal, view, light, albedo core.Vec3, metallic, roughness float64) core.Vec3 {
	half := view.Add(light).Normalize()
	nv := max(normal.Dot(view), 0)
	nl := max(normal.Dot(light), 0)
	nh := max(normal.Dot(half), 0)
	vh := max(view.Dot(half), 0)

	f0 := baseReflectance(albedo, metallic)
	d := distributionGGX(nh, roughness)
	g := geometrySmith(nv, nl, roughness)
	f := fresnelSchlick(vh, f0)

	specular := f.Multiply(d * g / max(4*nv*nl, brdfEpsilon))

	// Diffuse energy is what the specular lobe does not reflect; metals
	// have no diffuse component.
	kd := core.NewVec3(1, 1, 1).Subtract(f).Multiply(1 - metallic)
	diffuse := kd.MultiplyVec(albedo).Multiply(1 / math.Pi)

	return diffuse.Add(specular)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
