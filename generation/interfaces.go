package generation

import (
	"ebiten-platformer/tilemap"
)

// MapGenerator defines the interface for level generation functionality
type MapGenerator interface {
	Generate(rows, cols, tileSize int) (tilemap.Definition, error)
}
