package encoder

import (
	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

// DecodeShape reconstructs the shape record stored in slot i. Bounded
// attributes come back within the fixed-point quantization tolerance;
// ids and type tags are exact.
func (b *SceneBuffer) DecodeShape(i int) scene.ShapeRecord {
	row := &b.Shapes[i]
	return scene.ShapeRecord{
		ID:   int(row[shapeID]),
		Type: scene.ShapeType(row[shapeTypeTag]),
		Position: core.NewVec3(
			dequantize(row[shapePosX], -positionRange, positionRange),
			dequantize(row[shapePosY], -positionRange, positionRange),
			dequantize(row[shapePosZ], -positionRange, positionRange),
		),
		Orientation: core.NewQuat(
			dequantize(row[shapeQuatX], -1, 1),
			dequantize(row[shapeQuatY], -1, 1),
			dequantize(row[shapeQuatZ], -1, 1),
			dequantize(row[shapeQuatW], -1, 1),
		).Normalize(),
		Size: core.NewVec3(
			dequantize(row[shapeSizeX], 0, sizeMax),
			dequantize(row[shapeSizeY], 0, sizeMax),
			dequantize(row[shapeSizeZ], 0, sizeMax),
		),
		MaterialID: int(row[shapeMaterialID]),
	}
}

// DecodeMaterial reconstructs the material record stored in slot i
func (b *SceneBuffer) DecodeMaterial(i int) scene.MaterialRecord {
	row := &b.Materials[i]
	flags := uint32(row[matFlags])
	return scene.MaterialRecord{
		Albedo: core.NewVec3(
			dequantize(row[matAlbedoR], 0, 1),
			dequantize(row[matAlbedoG], 0, 1),
			dequantize(row[matAlbedoB], 0, 1),
		),
		Metallic:  dequantize(row[matMetallic], 0, 1),
		Roughness: dequantize(row[matRoughness], 0, 1),
		Emissive: core.NewVec3(
			dequantize(row[matEmissiveR], 0, 1),
			dequantize(row[matEmissiveG], 0, 1),
			dequantize(row[matEmissiveB], 0, 1),
		),
		EmissiveFactor: dequantize(row[matEmissiveFactor], 0, emissiveFacMax),
		IOR:            dequantize(row[matIOR], iorMin, iorMax),
		Transparent:    flags&FlagTransparent != 0,
		AlbedoTexture:  int(row[matAlbedoTexture]),
		NormalTexture:  int(row[matNormalTexture]),
	}
}

// MaterialOrDefault decodes the material in slot id, substituting the
// built-in default material when the id does not resolve
func (b *SceneBuffer) MaterialOrDefault(id int) scene.MaterialRecord {
	if id < 0 || id >= b.ActiveMaterials {
		return scene.DefaultMaterial()
	}
	return b.DecodeMaterial(id)
}

// DecodeShapes reconstructs all active shape records in slot order
func (b *SceneBuffer) DecodeShapes() []scene.ShapeRecord {
	shapes := make([]scene.ShapeRecord, b.ActiveShapes)
	for i := range shapes {
		shapes[i] = b.DecodeShape(i)
	}
	return shapes
}
