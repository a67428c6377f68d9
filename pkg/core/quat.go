package core

import "math"

// Quat represents a rotation quaternion with W as the scalar part.
// Rotations assume a unit quaternion; callers that build quaternions
// from raw components should Normalize first.
type Quat struct {
	X, Y, Z, W float64
}

// NewQuat creates a new quaternion from raw components
func NewQuat(x, y, z, w float64) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// IdentityQuat returns the identity rotation
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion rotating by angle radians around axis
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	unit := axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{
		X: unit.X * s,
		Y: unit.Y * s,
		Z: unit.Z * s,
		W: math.Cos(angle / 2),
	}
}

// Length returns the magnitude of the quaternion
func (q Quat) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns a unit quaternion in the same orientation.
// A zero quaternion normalizes to the identity rotation.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length == 0 {
		return IdentityQuat()
	}
	return Quat{q.X / length, q.Y / length, q.Z / length, q.W / length}
}

// Conjugate returns the conjugate quaternion. For a unit quaternion
// this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Multiply returns the Hamilton product q*other, composing rotations
// so that other is applied first
func (q Quat) Multiply(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to a vector using the expanded form
// v' = v + 2*w*(q.xyz × v) + 2*(q.xyz × (q.xyz × v))
func (q Quat) Rotate(v Vec3) Vec3 {
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qv.Cross(v).Multiply(2)
	return v.Add(t.Multiply(q.W)).Add(qv.Cross(t))
}
