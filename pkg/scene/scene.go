package scene

import (
	"github.com/raydist/go-sdf-raytracer/pkg/core"
)

// Scene owns the mutable shape and material lists. An external driver
// (physics, animation, UI) mutates it between frames; the render pipeline
// only reads a snapshot of it once per frame.
type Scene struct {
	shapes    []ShapeRecord
	materials []MaterialRecord
	nextID    int

	// Animate, when set, repositions shapes for the given elapsed time.
	// It runs before the frame snapshot is taken, never during a frame.
	Animate func(s *Scene, elapsed float64)
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddMaterial registers a material and returns its id
func (s *Scene) AddMaterial(m MaterialRecord) int {
	s.materials = append(s.materials, m)
	return len(s.materials) - 1
}

// AddShape adds a shape and assigns it a unique stable id
func (s *Scene) AddShape(shapeType ShapeType, position core.Vec3, orientation core.Quat, size core.Vec3, materialID int) int {
	id := s.nextID
	s.nextID++
	s.shapes = append(s.shapes, ShapeRecord{
		ID:          id,
		Type:        shapeType,
		Position:    position,
		Orientation: orientation.Normalize(),
		Size:        size,
		MaterialID:  materialID,
	})
	return id
}

// RemoveShape deletes the shape with the given id, keeping the order of
// the remaining shapes
func (s *Scene) RemoveShape(id int) bool {
	for i, shape := range s.shapes {
		if shape.ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Shape returns a pointer to the shape with the given id for mutation
func (s *Scene) Shape(id int) (*ShapeRecord, bool) {
	for i := range s.shapes {
		if s.shapes[i].ID == id {
			return &s.shapes[i], true
		}
	}
	return nil, false
}

// Shapes returns the current shape list. The returned slice is the live
// list; callers that need an isolated copy take one via the encoder.
func (s *Scene) Shapes() []ShapeRecord {
	return s.shapes
}

// Materials returns the current material list
func (s *Scene) Materials() []MaterialRecord {
	return s.materials
}

// Advance applies the scene's animation callback for the elapsed time
func (s *Scene) Advance(elapsed float64) {
	if s.Animate != nil {
		s.Animate(s, elapsed)
	}
}
