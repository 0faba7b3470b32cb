package systems

import (
	"image/color"
	"math"
	"sort"

	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

// Sprite is one entity as it should appear on screen this frame.
// Box is in view coordinates, relative to the camera.
type Sprite struct {
	Entity ecs.EntityID
	Type   string
	Box    geom.Box
	Glyph  rune
	Color  color.RGBA
	Layer  int

	Anim  string
	Frame int
}

// Scene is the drawable state of one frame, consumed by the window and terminal drivers
type Scene struct {
	Camera   geom.Vec2 // top-left of the view in world units
	View     geom.Vec2 // view size in world units
	TileSize int
	Tiles    []*tilemap.Tile // visible tiles, row-major
	Sprites  []Sprite        // visible entities, lowest layer first
	Alpha    float64
}

// ViewBox returns the visible world area
func (s *Scene) ViewBox() geom.Box {
	return geom.Box{Min: s.Camera, Max: s.Camera.Add(s.View)}
}

// RenderSystem builds the Scene for each displayed frame. Entity positions are
// interpolated between the last two simulation steps and culled against the view.
type RenderSystem struct {
	ecs.BaseSystem
	tiles *tilemap.TileMap
	view  geom.Vec2

	scene Scene
}

// NewRenderSystem creates a render system with a view of the given world size.
// The view of the first camera entity takes precedence when one exists.
func NewRenderSystem(tiles *tilemap.TileMap, viewWidth, viewHeight float64) *RenderSystem {
	return &RenderSystem{
		BaseSystem: ecs.NewBaseSystem(components.PositionID, components.RenderableID),
		tiles:      tiles,
		view:       geom.V(viewWidth, viewHeight),
	}
}

// SetTileMap replaces the map drawn behind entities
func (s *RenderSystem) SetTileMap(tiles *tilemap.TileMap) {
	s.tiles = tiles
}

// Scene returns the scene built by the last Render call
func (s *RenderSystem) Scene() *Scene {
	return &s.scene
}

// Render rebuilds the scene for interpolation factor alpha
func (s *RenderSystem) Render(alpha float64) {
	scene := Scene{
		View:    s.view,
		Alpha:   alpha,
		Tiles:   s.scene.Tiles[:0],
		Sprites: s.scene.Sprites[:0],
	}
	if cam, ok := s.camera(); ok {
		scene.Camera = geom.V(cam.X, cam.Y)
		if cam.ViewWidth > 0 && cam.ViewHeight > 0 {
			scene.View = geom.V(cam.ViewWidth, cam.ViewHeight)
		}
	}
	view := scene.ViewBox()

	if s.tiles != nil {
		scene.TileSize = s.tiles.TileSize()
		scene.Tiles = s.visibleTiles(scene.Tiles, view)
	}

	s.Bundle().Each(func(e *ecs.Entity) {
		pos := ecs.MustGet[*components.Position](e)
		r := ecs.MustGet[*components.Renderable](e)
		box, _ := ecs.Get[*components.BoundingBox](e)

		world := box.At(pos.Transform(alpha))
		pos.MarkClean()
		if !s.visible(world, view) {
			return
		}

		sprite := Sprite{
			Entity: e.ID,
			Type:   e.Type,
			Box:    geom.Box{Min: world.Min.Sub(scene.Camera), Max: world.Max.Sub(scene.Camera)},
			Glyph:  r.Glyph,
			Color:  r.Color,
			Layer:  r.Layer,
		}
		if anim, ok := ecs.Get[*components.Animation](e); ok {
			sprite.Anim = anim.State
			sprite.Frame = anim.Frame
		}
		scene.Sprites = append(scene.Sprites, sprite)
	})

	sort.SliceStable(scene.Sprites, func(i, j int) bool {
		return scene.Sprites[i].Layer < scene.Sprites[j].Layer
	})
	s.scene = scene
}

// visible accepts boxes touching the view. Zero-size boxes are points.
func (s *RenderSystem) visible(b, view geom.Box) bool {
	return b.Max.X >= view.Min.X && b.Min.X <= view.Max.X &&
		b.Max.Y >= view.Min.Y && b.Min.Y <= view.Max.Y
}

func (s *RenderSystem) visibleTiles(out []*tilemap.Tile, view geom.Box) []*tilemap.Tile {
	size := float64(s.tiles.TileSize())
	firstCol := int(math.Max(0, math.Floor(view.Min.X/size)))
	firstRow := int(math.Max(0, math.Floor(view.Min.Y/size)))
	lastCol := int(math.Min(float64(s.tiles.Cols()), math.Ceil(view.Max.X/size))) - 1
	lastRow := int(math.Min(float64(s.tiles.Rows()), math.Ceil(view.Max.Y/size))) - 1

	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			if tile, ok := s.tiles.Tile(row, col); ok {
				out = append(out, tile)
			}
		}
	}
	return out
}

func (s *RenderSystem) camera() (*components.Camera, bool) {
	for _, e := range s.World().Query(components.CameraID).Entities() {
		return ecs.MustGet[*components.Camera](e), true
	}
	return nil, false
}
