package sdf

import (
	"math"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// Construction constants for the unit-space primitives. Each primitive is
// defined in its local frame with the shape's Size divided out, so these
// fix the proportions that Size then scales.
const (
	torusMajorRadius   = 1.0
	torusMinorRadius   = 0.25
	cylinderRadius     = 0.5
	cylinderHalfHeight = 0.5
	coneHalfHeight     = 0.5
	coneBaseRadius     = 0.5
	capsuleRadius      = 0.35
	capsuleHalfLength  = 0.5
)

// sdfSphere returns the signed distance to the unit sphere
func sdfSphere(p core.Vec3) float64 {
	return p.Length() - 1
}

// sdfBox returns the signed distance to the unit box (half extents 1).
// Outside distance comes from the clamped offset vector, inside distance
// from the largest axis penetration.
func sdfBox(p core.Vec3) float64 {
	q := p.Abs().Subtract(core.NewVec3(1, 1, 1))
	outside := q.Clamp(0, math.Inf(1)).Length()
	inside := min(q.MaxComponent(), 0)
	return outside + inside
}

// sdfTorus returns the signed distance to a torus in the local XZ plane:
// first the distance to the major circle, then to the tube around it
func sdfTorus(p core.Vec3) float64 {
	ring := math.Hypot(p.X, p.Z) - torusMajorRadius
	return math.Hypot(ring, p.Y) - torusMinorRadius
}

// sdfCylinder returns the signed distance to a capped cylinder along the
// local Y axis
func sdfCylinder(p core.Vec3) float64 {
	dx := math.Hypot(p.X, p.Z) - cylinderRadius
	dy := math.Abs(p.Y) - cylinderHalfHeight
	outside := math.Hypot(max(dx, 0), max(dy, 0))
	inside := min(max(dx, dy), 0)
	return outside + inside
}

// sdfCone returns the signed distance to a capped cone along the local Y
// axis, base at y=-coneHalfHeight, apex at y=+coneHalfHeight
func sdfCone(p core.Vec3) float64 {
	// Work in 2D: radial distance vs height.
	qx := math.Hypot(p.X, p.Z)
	qy := p.Y

	// Distance to the cap disc and to the slanted side segment.
	r1 := coneBaseRadius
	h := coneHalfHeight

	// ca: offset to the base cap region
	capR := 0.0
	if qy < 0 {
		capR = r1
	}
	cax := qx - min(qx, capR)
	cay := math.Abs(qy) - h

	// cb: offset to the lateral segment from (r1,-h) to (0,h).
	// t is the projection of q onto the segment, clamped to its ends.
	kx := 0.0 - r1
	ky := 2 * h
	t := clamp(((qx-r1)*kx+(qy+h)*ky)/(kx*kx+ky*ky), 0, 1)
	cbx := qx - (r1 + kx*t)
	cby := qy - (-h + ky*t)

	sign := 1.0
	if cbx < 0 && cay < 0 {
		sign = -1.0
	}
	d2 := min(cax*cax+cay*cay, cbx*cbx+cby*cby)
	return sign * math.Sqrt(d2)
}

// sdfCapsule returns the signed distance to a capsule along the local Y
// axis: a segment of half-length capsuleHalfLength swept by capsuleRadius
func sdfCapsule(p core.Vec3) float64 {
	py := p.Y - clamp(p.Y, -capsuleHalfLength, capsuleHalfLength)
	return core.NewVec3(p.X, py, p.Z).Length() - capsuleRadius
}

// sdfPlane returns the signed distance to the local XZ plane (normal +Y)
func sdfPlane(p core.Vec3) float64 {
	return p.Y
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
