package shading

import (
	"testing"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

func TestReinhard_CompressesIntoUnitRange(t *testing.T) {
	tests := []struct {
		name  string
		input float64
	}{
		{"black", 0},
		{"mid", 0.5},
		{"white", 1},
		{"hot", 10},
		{"very hot", 1e5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Reinhard(core.NewVec3(tt.input, tt.input, tt.input))
			if out.X < 0 || out.X >= 1 {
				t.Errorf("Reinhard(%f) = %f outside [0,1)", tt.input, out.X)
			}
		})
	}

	if got := Reinhard(core.NewVec3(0, 0, 0)); got != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected black to stay black, got %v", got)
	}
}

func TestReinhard_Monotonic(t *testing.T) {
	previous := -1.0
	for v := 0.0; v < 20; v += 0.5 {
		current := Reinhard(core.NewVec3(v, v, v)).X
		if current <= previous {
			t.Errorf("Reinhard not monotonic at %f: %f <= %f", v, current, previous)
		}
		previous = current
	}
}

func TestToneMap_OutputBounded(t *testing.T) {
	inputs := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.18, 0.18, 0.18),
		core.NewVec3(1, 1, 1),
		core.NewVec3(500, 2, 0.01),
		core.NewVec3(1e9, 1e9, 1e9),
		core.NewVec3(-0.5, 0.5, 0.5), // negative radiance clamps to black
	}

	for _, in := range inputs {
		out := ToneMap(in)
		for _, c := range []float64{out.X, out.Y, out.Z} {
			if c < 0 || c > 1 {
				t.Errorf("ToneMap(%v) = %v outside [0,1]", in, out)
			}
		}
	}
}

func TestToneMap_GammaBrightensMidtones(t *testing.T) {
	mid := core.NewVec3(0.5, 0.5, 0.5)
	linear := Reinhard(mid).X
	display := ToneMap(mid).X
	if display <= linear {
		t.Errorf("Expected gamma to brighten %f, got %f", linear, display)
	}
}
