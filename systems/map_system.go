package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

// MapUser is implemented by systems that read the active tile map
type MapUser interface {
	SetTileMap(tiles *tilemap.TileMap)
}

// MapSystem owns the active tile map and hands it to every MapUser in the world
type MapSystem struct {
	ecs.BaseSystem
	tiles *tilemap.TileMap
}

// NewMapSystem creates a map system for tiles
func NewMapSystem(tiles *tilemap.TileMap) *MapSystem {
	return &MapSystem{
		BaseSystem: ecs.NewBaseSystem(),
		tiles:      tiles,
	}
}

// TileMap returns the active map
func (s *MapSystem) TileMap() *tilemap.TileMap {
	return s.tiles
}

// SetTileMap swaps the active map. Systems added to the world later do not receive it.
func (s *MapSystem) SetTileMap(tiles *tilemap.TileMap) {
	s.tiles = tiles
	if !s.Attached() {
		return
	}
	for _, system := range s.World().GetSystems() {
		if user, ok := system.(MapUser); ok && system != ecs.System(s) {
			user.SetTileMap(tiles)
		}
	}
	s.World().Logger().Info("tile map changed", "rows", tiles.Rows(), "cols", tiles.Cols())
}

// FindSpawnPoint locates the first empty tile resting on a solid one and returns
// the center of a box of height h standing on it. Falls back to the map center.
func (s *MapSystem) FindSpawnPoint(h float64) geom.Vec2 {
	surfaces := s.tiles.Surfaces()
	if len(surfaces) == 0 {
		return s.tiles.Boundary().Center()
	}
	tile := surfaces[0]
	size := float64(s.tiles.TileSize())
	return geom.V(tile.Position.X+size/2, tile.Position.Y+size-h/2-1)
}

// RepositionPlayer moves every player to the spawn point without interpolation
func (s *MapSystem) RepositionPlayer() {
	for _, player := range s.World().Query(components.PlayerID, components.PositionID).Entities() {
		box, _ := ecs.Get[*components.BoundingBox](player)
		_, hh := box.HalfExtents()
		ecs.MustGet[*components.Position](player).Teleport(s.FindSpawnPoint(hh * 2))
		if body, ok := ecs.Get[*components.RigidBody](player); ok {
			body.Velocity = geom.Vec2{}
		}
	}
}
