package core

import (
	"math"
	"testing"
)

func TestQuat_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		axis     Vec3
		angle    float64
		expected Vec3
	}{
		{
			name:     "identity rotation",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    0,
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "90 degrees around Z",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 0, 1),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "90 degrees around Y",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "90 degrees around X",
			vector:   NewVec3(0, 1, 0),
			axis:     NewVec3(1, 0, 0),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "180 degrees around Y",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    math.Pi,
			expected: NewVec3(-1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			result := q.Rotate(tt.vector)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestQuat_ConjugateInvertsRotation(t *testing.T) {
	q := QuatFromAxisAngle(NewVec3(1, 2, -0.5), 1.234)
	v := NewVec3(0.3, -1.7, 2.2)

	roundTrip := q.Conjugate().Rotate(q.Rotate(v))
	if roundTrip.Subtract(v).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", v, roundTrip)
	}
}

func TestQuat_MultiplyComposes(t *testing.T) {
	// 90 degrees around Y, then 90 degrees around Z
	qy := QuatFromAxisAngle(NewVec3(0, 1, 0), math.Pi/2)
	qz := QuatFromAxisAngle(NewVec3(0, 0, 1), math.Pi/2)
	combined := qz.Multiply(qy)

	v := NewVec3(1, 0, 0)
	expected := qz.Rotate(qy.Rotate(v))
	result := combined.Rotate(v)

	if result.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestQuat_Normalize(t *testing.T) {
	q := NewQuat(1, 2, 3, 4).Normalize()
	if math.Abs(q.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", q.Length())
	}

	// Zero quaternion falls back to identity
	zero := NewQuat(0, 0, 0, 0).Normalize()
	if zero != IdentityQuat() {
		t.Errorf("Expected identity, got %v", zero)
	}
}
