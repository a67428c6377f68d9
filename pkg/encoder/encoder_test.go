package encoder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

// Quantization tolerances: half a fixed-point step over the attribute's
// encoding range.
const (
	unitTolerance     = 1.0 / quantScale
	positionTolerance = 2 * positionRange / quantScale
	sizeTolerance     = sizeMax / quantScale
	iorTolerance      = (iorMax - iorMin) / quantScale
)

type warnRecorder struct {
	messages []string
}

func (w *warnRecorder) Printf(format string, args ...interface{}) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

func testShape(id int) scene.ShapeRecord {
	return scene.ShapeRecord{
		ID:          id,
		Type:        scene.ShapeTorus,
		Position:    core.NewVec3(1.25, -3.5, 17.0),
		Orientation: core.QuatFromAxisAngle(core.NewVec3(0, 1, 0), 0.7),
		Size:        core.NewVec3(0.5, 1.5, 2.0),
		MaterialID:  3,
	}
}

func testMaterial() scene.MaterialRecord {
	m := scene.NewMaterialRecord(core.NewVec3(0.8, 0.2, 0.1), 0.75, 0.3)
	m.Emissive = core.NewVec3(0.9, 0.5, 0.2)
	m.EmissiveFactor = 4.0
	m.IOR = 1.45
	m.Transparent = true
	return m
}

func TestEncoder_ShapeRoundTrip(t *testing.T) {
	enc := NewEncoder(nil)
	original := testShape(7)

	buf := enc.Encode([]scene.ShapeRecord{original}, nil)
	require.Equal(t, 1, buf.ActiveShapes)

	decoded := buf.DecodeShape(0)

	// Identity attributes are exact
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.MaterialID, decoded.MaterialID)

	// Bounded attributes come back within the quantization tolerance
	assert.InDelta(t, original.Position.X, decoded.Position.X, positionTolerance)
	assert.InDelta(t, original.Position.Y, decoded.Position.Y, positionTolerance)
	assert.InDelta(t, original.Position.Z, decoded.Position.Z, positionTolerance)
	assert.InDelta(t, original.Size.X, decoded.Size.X, sizeTolerance)
	assert.InDelta(t, original.Size.Y, decoded.Size.Y, sizeTolerance)
	assert.InDelta(t, original.Size.Z, decoded.Size.Z, sizeTolerance)

	// The decoded orientation must rotate like the original
	v := core.NewVec3(0.3, 0.5, -0.7)
	rotated := original.Orientation.Rotate(v)
	decodedRotated := decoded.Orientation.Rotate(v)
	assert.InDelta(t, 0, rotated.Subtract(decodedRotated).Length(), 1e-3)
}

func TestEncoder_MaterialRoundTrip(t *testing.T) {
	enc := NewEncoder(nil)
	original := testMaterial()

	buf := enc.Encode(nil, []scene.MaterialRecord{original})
	require.Equal(t, 1, buf.ActiveMaterials)

	decoded := buf.DecodeMaterial(0)

	assert.InDelta(t, original.Albedo.X, decoded.Albedo.X, unitTolerance)
	assert.InDelta(t, original.Albedo.Y, decoded.Albedo.Y, unitTolerance)
	assert.InDelta(t, original.Albedo.Z, decoded.Albedo.Z, unitTolerance)
	assert.InDelta(t, original.Metallic, decoded.Metallic, unitTolerance)
	assert.InDelta(t, original.Roughness, decoded.Roughness, unitTolerance)
	assert.InDelta(t, original.Emissive.X, decoded.Emissive.X, unitTolerance)
	assert.InDelta(t, original.EmissiveFactor, decoded.EmissiveFactor, emissiveFacMax/quantScale)
	assert.InDelta(t, original.IOR, decoded.IOR, iorTolerance)
	assert.True(t, decoded.Transparent)
	assert.Equal(t, -1, decoded.AlbedoTexture)
	assert.Equal(t, -1, decoded.NormalTexture)
}

func TestEncoder_RowLayout(t *testing.T) {
	// The channel assignment is a wire contract: position.xyz then the
	// shape id in group 0, the type tag in the last channel of group 2.
	enc := NewEncoder(nil)
	shape := testShape(42)
	buf := enc.Encode([]scene.ShapeRecord{shape}, nil)

	row := buf.Shapes[0]
	assert.Equal(t, float32(42), row[3], "shape id belongs in channel 3")
	assert.Equal(t, float32(scene.ShapeTorus), row[11], "type tag belongs in channel 11")
	assert.Equal(t, float32(3), row[12], "material id belongs in channel 12")
}

func TestEncoder_FlagPacking(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*scene.MaterialRecord)
		expected uint32
	}{
		{
			name:     "opaque plain material",
			mutate:   func(m *scene.MaterialRecord) {},
			expected: 0,
		},
		{
			name:     "transparent",
			mutate:   func(m *scene.MaterialRecord) { m.Transparent = true },
			expected: FlagTransparent,
		},
		{
			name:     "emissive",
			mutate:   func(m *scene.MaterialRecord) { m.EmissiveFactor = 2 },
			expected: FlagEmissive,
		},
		{
			name:     "textured",
			mutate:   func(m *scene.MaterialRecord) { m.AlbedoTexture = 0 },
			expected: FlagTextured,
		},
		{
			name: "all flags",
			mutate: func(m *scene.MaterialRecord) {
				m.Transparent = true
				m.EmissiveFactor = 1
				m.NormalTexture = 2
			},
			expected: FlagTransparent | FlagEmissive | FlagTextured,
		},
	}

	enc := NewEncoder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := scene.NewMaterialRecord(core.NewVec3(0.5, 0.5, 0.5), 0, 0.5)
			tt.mutate(&m)
			buf := enc.Encode(nil, []scene.MaterialRecord{m})
			assert.Equal(t, tt.expected, uint32(buf.Materials[0][matFlags]))
		})
	}
}

func TestEncoder_TruncatesOverCapacity(t *testing.T) {
	warnings := &warnRecorder{}
	enc := NewEncoder(warnings)

	shapes := make([]scene.ShapeRecord, MaxShapes+10)
	for i := range shapes {
		shapes[i] = testShape(i)
		shapes[i].MaterialID = i % 3
	}
	materials := []scene.MaterialRecord{testMaterial(), testMaterial(), testMaterial()}

	buf := enc.Encode(shapes, materials)

	require.Equal(t, MaxShapes, buf.ActiveShapes)
	require.Len(t, warnings.messages, 1)

	// Lowest-indexed records win, and their material references survive
	for i := 0; i < MaxShapes; i++ {
		decoded := buf.DecodeShape(i)
		assert.Equal(t, i, decoded.ID)
		assert.Equal(t, i%3, decoded.MaterialID)
		assert.Less(t, decoded.MaterialID, buf.ActiveMaterials)
	}
}

func TestEncoder_Idempotent(t *testing.T) {
	enc := NewEncoder(nil)
	shapes := []scene.ShapeRecord{testShape(1), testShape(2)}
	materials := []scene.MaterialRecord{testMaterial()}

	first := enc.Encode(shapes, materials)
	second := enc.Encode(shapes, materials)
	assert.Equal(t, first, second)
}

func TestEncoder_PositionClampsToRange(t *testing.T) {
	enc := NewEncoder(nil)
	shape := testShape(0)
	shape.Position = core.NewVec3(1000, -1000, 0)

	buf := enc.Encode([]scene.ShapeRecord{shape}, nil)
	decoded := buf.DecodeShape(0)

	assert.InDelta(t, positionRange, decoded.Position.X, positionTolerance)
	assert.InDelta(t, -positionRange, decoded.Position.Y, positionTolerance)
}

func TestSceneBuffer_MaterialOrDefault(t *testing.T) {
	enc := NewEncoder(nil)
	buf := enc.Encode(nil, []scene.MaterialRecord{testMaterial()})

	def := scene.DefaultMaterial()
	for _, id := range []int{-1, 1, 99} {
		got := buf.MaterialOrDefault(id)
		assert.InDelta(t, def.Albedo.X, got.Albedo.X, unitTolerance, "id %d should fall back to default", id)
	}

	// A valid id decodes the stored material, not the default
	got := buf.MaterialOrDefault(0)
	assert.InDelta(t, 0.8, got.Albedo.X, unitTolerance)
}

func TestSnapshotContainer_PublishLatest(t *testing.T) {
	var container SnapshotContainer
	assert.Nil(t, container.Latest())

	enc := NewEncoder(nil)
	first := enc.Encode([]scene.ShapeRecord{testShape(0)}, nil)
	second := enc.Encode([]scene.ShapeRecord{testShape(1)}, nil)

	container.Publish(first)
	assert.Same(t, first, container.Latest())

	container.Publish(second)
	assert.Same(t, second, container.Latest())
}
