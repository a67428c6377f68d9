package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

// SceneFile is the TOML representation of a scene: a list of named
// materials followed by a list of shapes referencing them by name
type SceneFile struct {
	Materials []MaterialEntry `toml:"materials"`
	Shapes    []ShapeEntry    `toml:"shapes"`
}

// MaterialEntry describes one material in a scene file
type MaterialEntry struct {
	Name           string     `toml:"name"`
	Albedo         [3]float64 `toml:"albedo"`
	Metallic       float64    `toml:"metallic"`
	Roughness      float64    `toml:"roughness"`
	Emissive       [3]float64 `toml:"emissive"`
	EmissiveFactor float64    `toml:"emissive_factor"`
	IOR            float64    `toml:"ior"`
	Transparent    bool       `toml:"transparent"`
}

// ShapeEntry describes one shape in a scene file. Rotation is an
// axis-angle pair; size may be a single uniform value via the first
// component when the others are zero.
type ShapeEntry struct {
	Type            string     `toml:"type"`
	Position        [3]float64 `toml:"position"`
	RotationAxis    [3]float64 `toml:"rotation_axis"`
	RotationDegrees float64    `toml:"rotation_degrees"`
	Size            [3]float64 `toml:"size"`
	Material        string     `toml:"material"`
}

// LoadScene reads a TOML scene description into a Scene
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}

	var file SceneFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("scene: parsing %s: %w", path, err)
	}
	return file.Build()
}

// Build converts the parsed file into a Scene, resolving material names
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewScene()

	materialIDs := make(map[string]int, len(f.Materials))
	for i, entry := range f.Materials {
		if entry.Name == "" {
			return nil, fmt.Errorf("scene: material %d has no name", i)
		}
		if _, exists := materialIDs[entry.Name]; exists {
			return nil, fmt.Errorf("scene: duplicate material %q", entry.Name)
		}

		record := scene.NewMaterialRecord(toVec(entry.Albedo), entry.Metallic, entry.Roughness)
		record.Emissive = toVec(entry.Emissive)
		record.EmissiveFactor = entry.EmissiveFactor
		record.Transparent = entry.Transparent
		if entry.IOR > 0 {
			record.IOR = entry.IOR
		}
		materialIDs[entry.Name] = s.AddMaterial(record)
	}

	for i, entry := range f.Shapes {
		shapeType, ok := scene.ParseShapeType(entry.Type)
		if !ok {
			return nil, fmt.Errorf("scene: shape %d has unknown type %q", i, entry.Type)
		}

		materialID, ok := materialIDs[entry.Material]
		if !ok {
			return nil, fmt.Errorf("scene: shape %d references unknown material %q", i, entry.Material)
		}

		orientation := core.IdentityQuat()
		if entry.RotationDegrees != 0 {
			axis := toVec(entry.RotationAxis)
			if axis.Length() == 0 {
				return nil, fmt.Errorf("scene: shape %d rotates around a zero axis", i)
			}
			orientation = core.QuatFromAxisAngle(axis, entry.RotationDegrees*degToRad)
		}

		size := toVec(entry.Size)
		if size.Y == 0 && size.Z == 0 {
			// A single value means uniform scale.
			size = core.NewVec3(size.X, size.X, size.X)
		}
		if size.MinComponent() <= 0 {
			return nil, fmt.Errorf("scene: shape %d has non-positive size", i)
		}

		s.AddShape(shapeType, toVec(entry.Position), orientation, size, materialID)
	}

	return s, nil
}

const degToRad = 0.017453292519943295
