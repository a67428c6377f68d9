package encoder

import (
	"github.com/chewxy/math32"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

// Encoder packs shape and material records into SceneBuffer rows.
// Encoding is idempotent and holds no state between frames; the logger is
// only used to surface capacity truncation warnings.
type Encoder struct {
	logger core.Logger
}

// NewEncoder creates an encoder reporting warnings to the given logger
func NewEncoder(logger core.Logger) *Encoder {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Encoder{logger: logger}
}

// Encode builds a fresh SceneBuffer from the given records. Lists over
// capacity are truncated deterministically: the lowest-indexed records win
// and a warning is logged. Encode never fails.
func (e *Encoder) Encode(shapes []scene.ShapeRecord, materials []scene.MaterialRecord) *SceneBuffer {
	buf := &SceneBuffer{}

	if len(shapes) > MaxShapes {
		e.logger.Printf("scene has %d shapes, truncating to %d", len(shapes), MaxShapes)
		shapes = shapes[:MaxShapes]
	}
	if len(materials) > MaxMaterials {
		e.logger.Printf("scene has %d materials, truncating to %d", len(materials), MaxMaterials)
		materials = materials[:MaxMaterials]
	}

	for i := range shapes {
		encodeShape(&buf.Shapes[i], &shapes[i])
	}
	for i := range materials {
		encodeMaterial(&buf.Materials[i], &materials[i])
	}
	buf.ActiveShapes = len(shapes)
	buf.ActiveMaterials = len(materials)
	return buf
}

func encodeShape(row *[ShapeStride]float32, s *scene.ShapeRecord) {
	row[shapePosX] = quantize(s.Position.X, -positionRange, positionRange)
	row[shapePosY] = quantize(s.Position.Y, -positionRange, positionRange)
	row[shapePosZ] = quantize(s.Position.Z, -positionRange, positionRange)
	row[shapeID] = float32(s.ID)

	q := s.Orientation.Normalize()
	row[shapeQuatX] = quantize(q.X, -1, 1)
	row[shapeQuatY] = quantize(q.Y, -1, 1)
	row[shapeQuatZ] = quantize(q.Z, -1, 1)
	row[shapeQuatW] = quantize(q.W, -1, 1)

	row[shapeSizeX] = quantize(s.Size.X, 0, sizeMax)
	row[shapeSizeY] = quantize(s.Size.Y, 0, sizeMax)
	row[shapeSizeZ] = quantize(s.Size.Z, 0, sizeMax)
	row[shapeTypeTag] = float32(s.Type)

	row[shapeMaterialID] = float32(s.MaterialID)
}

func encodeMaterial(row *[MaterialStride]float32, m *scene.MaterialRecord) {
	row[matAlbedoR] = quantize(m.Albedo.X, 0, 1)
	row[matAlbedoG] = quantize(m.Albedo.Y, 0, 1)
	row[matAlbedoB] = quantize(m.Albedo.Z, 0, 1)
	row[matMetallic] = quantize(m.Metallic, 0, 1)

	row[matRoughness] = quantize(m.Roughness, 0, 1)
	row[matEmissiveFactor] = quantize(m.EmissiveFactor, 0, emissiveFacMax)
	row[matIOR] = quantize(m.IOR, iorMin, iorMax)
	row[matFlags] = float32(packFlags(m))

	row[matEmissiveR] = quantize(m.Emissive.X, 0, 1)
	row[matEmissiveG] = quantize(m.Emissive.Y, 0, 1)
	row[matEmissiveB] = quantize(m.Emissive.Z, 0, 1)

	row[matAlbedoTexture] = float32(m.AlbedoTexture)
	row[matNormalTexture] = float32(m.NormalTexture)
}

func packFlags(m *scene.MaterialRecord) uint32 {
	var flags uint32
	if m.Transparent {
		flags |= FlagTransparent
	}
	if m.EmissiveFactor > 0 {
		flags |= FlagEmissive
	}
	if m.AlbedoTexture >= 0 || m.NormalTexture >= 0 {
		flags |= FlagTextured
	}
	return flags
}

// quantize maps v through the affine normalization (v-lo)/(hi-lo) into
// [0,1], then snaps it to the 16-bit fixed-point grid
func quantize(v, lo, hi float64) float32 {
	t := float32((v - lo) / (hi - lo))
	t = math32.Max(0, math32.Min(1, t))
	return math32.Floor(t*quantScale+0.5) / quantScale
}

// dequantize inverts the affine normalization applied by quantize
func dequantize(q float32, lo, hi float64) float64 {
	return lo + float64(q)*(hi-lo)
}
