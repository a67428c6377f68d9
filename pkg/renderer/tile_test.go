package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_CoversImageExactly(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, tileSize int
		expectedTiles           int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"ragged right edge", 100, 64, 32, 8},
		{"ragged both edges", 100, 70, 32, 12},
		{"single tile", 16, 16, 32, 1},
		{"one pixel", 1, 1, 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel covered exactly once
			covered := image.NewGray(image.Rect(0, 0, tt.width, tt.height))
			totalPixels := 0
			for _, tile := range tiles {
				if tile.Bounds.Max.X > tt.width || tile.Bounds.Max.Y > tt.height {
					t.Errorf("Tile %d bounds %v exceed image", tile.ID, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						if covered.GrayAt(x, y).Y != 0 {
							t.Fatalf("Pixel (%d,%d) covered twice", x, y)
						}
						covered.Set(x, y, image.White)
						totalPixels++
					}
				}
			}
			if totalPixels != tt.width*tt.height {
				t.Errorf("Covered %d pixels, expected %d", totalPixels, tt.width*tt.height)
			}
		})
	}
}

func TestNewTileGrid_IDsAreSequential(t *testing.T) {
	tiles := NewTileGrid(100, 70, 32)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Tile at index %d has ID %d", i, tile.ID)
		}
	}
}
