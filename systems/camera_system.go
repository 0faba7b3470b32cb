package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

// CameraSystem handles viewport positioning and scrolling
type CameraSystem struct {
	ecs.BaseSystem
	tiles *tilemap.TileMap
}

// NewCameraSystem creates a camera system constrained to tiles (which may be nil)
func NewCameraSystem(tiles *tilemap.TileMap) *CameraSystem {
	return &CameraSystem{
		BaseSystem: ecs.NewBaseSystem(components.CameraID),
		tiles:      tiles,
	}
}

// SetTileMap replaces the map the camera is constrained to
func (s *CameraSystem) SetTileMap(tiles *tilemap.TileMap) {
	s.tiles = tiles
}

// Update centers every camera on its target, then constrains it to the map
func (s *CameraSystem) Update(dt float64) {
	world := s.World()
	s.Bundle().Each(func(e *ecs.Entity) {
		camera := ecs.MustGet[*components.Camera](e)

		target, ok := world.GetEntity(camera.Target)
		if !ok {
			return
		}
		pos, ok := ecs.Get[*components.Position](target)
		if !ok {
			return
		}

		x := pos.X - camera.ViewWidth/2
		y := pos.Y - camera.ViewHeight/2
		if s.tiles != nil {
			x = s.constrain(x, camera.ViewWidth, s.tiles.Width())
			y = s.constrain(y, camera.ViewHeight, s.tiles.Height())
		}

		if x != camera.X || y != camera.Y {
			camera.X, camera.Y = x, y
			world.EmitEvent(CameraUpdateEvent{Camera: e, X: x, Y: y})
		}
	})
}

// constrain keeps a viewport of size view inside [0, extent]. Maps smaller
// than the viewport are pinned to the origin.
func (s *CameraSystem) constrain(v, view, extent float64) float64 {
	if extent <= view {
		return 0
	}
	return geom.Clamp(v, 0, extent-view)
}
