package encoder

// Fixed capacities for the scene buffers. Slots beyond the active counts
// hold stale data and are never read by the marcher.
const (
	MaxShapes    = 64
	MaxMaterials = 32
)

// Row strides. Every record is a fixed number of 4-component float groups,
// mirroring a row of a GPU data texture.
const (
	GroupFloats    = 4
	ShapeGroups    = 4
	MaterialGroups = 4
	ShapeStride    = ShapeGroups * GroupFloats
	MaterialStride = MaterialGroups * GroupFloats
)

// Shape row channel assignment. The layout is part of the wire contract
// with the decoder and must not be reordered.
//
//	group 0: position.xyz, shapeID
//	group 1: orientation.xyzw
//	group 2: size.xyz, typeTag
//	group 3: materialID, reserved, reserved, reserved
const (
	shapePosX = iota
	shapePosY
	shapePosZ
	shapeID
	shapeQuatX
	shapeQuatY
	shapeQuatZ
	shapeQuatW
	shapeSizeX
	shapeSizeY
	shapeSizeZ
	shapeTypeTag
	shapeMaterialID
)

// Material row channel assignment.
//
//	group 0: albedo.rgb, metallic
//	group 1: roughness, emissiveFactor, ior, flags
//	group 2: emissive.rgb, reserved
//	group 3: texture slot indices
const (
	matAlbedoR = iota
	matAlbedoG
	matAlbedoB
	matMetallic
	matRoughness
	matEmissiveFactor
	matIOR
	matFlags
	matEmissiveR
	matEmissiveG
	matEmissiveB
	_
	matAlbedoTexture
	matNormalTexture
)

// Material flag bits, packed into the matFlags channel.
const (
	FlagTransparent = 1 << iota
	FlagEmissive
	FlagTextured
)

// Encoding ranges for bounded attributes. Values are affinely mapped into
// [0,1] before fixed-point quantization and mapped back on decode.
//
// Position is unbounded in principle; it uses a generous fixed range of
// ±50 scene units, giving a worst-case precision of 100/65535 ≈ 0.0015
// units per axis. Shapes outside that range clamp to the boundary.
const (
	positionRange  = 50.0
	sizeMax        = 16.0
	iorMin         = 1.0
	iorMax         = 2.5
	emissiveFacMax = 16.0
)

// quantScale is the fixed-point resolution: 16 bits per channel.
const quantScale = 65535.0

// SceneBuffer is the fixed-capacity, GPU-layout snapshot of a scene.
// It is written in full by the encoder once per frame and read-only
// afterwards; there is no incremental diffing.
type SceneBuffer struct {
	Shapes          [MaxShapes][ShapeStride]float32
	Materials       [MaxMaterials][MaterialStride]float32
	ActiveShapes    int
	ActiveMaterials int
}
