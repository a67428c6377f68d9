package shading

import "github.com/raydist/go-sdf-raytracer/pkg/core"

// displayGamma is the output gamma applied after tone mapping
const displayGamma = 2.2

// Reinhard compresses HDR radiance into [0,1) with the Reinhard operator
// c/(1+c), applied per channel
func Reinhard(c core.Vec3) core.Vec3 {
	return core.NewVec3(
		c.X/(1+c.X),
		c.Y/(1+c.Y),
		c.Z/(1+c.Z),
	)
}

// ToneMap converts linear HDR radiance to display values: Reinhard
// compression followed by gamma correction, clamped to [0,1]
func ToneMap(c core.Vec3) core.Vec3 {
	mapped := Reinhard(c.Clamp(0, maxRadiance))
	return mapped.GammaCorrect(displayGamma).Clamp(0, 1)
}

// maxRadiance bounds the tone map input; radiance above this is fully
// saturated anyway
const maxRadiance = 1e6
