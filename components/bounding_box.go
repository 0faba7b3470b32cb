package components

import (
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

// BoundingBox is a center-based axis-aligned box used for collision sampling and culling
type BoundingBox struct {
	Width  float64
	Height float64
}

// NewBoundingBox creates a box of the given size
func NewBoundingBox(w, h float64) *BoundingBox {
	return &BoundingBox{Width: w, Height: h}
}

func (*BoundingBox) ComponentID() ecs.ComponentID { return BoundingBoxID }

// HalfExtents returns half the width and half the height. A nil box has zero size.
func (b *BoundingBox) HalfExtents() (float64, float64) {
	if b == nil {
		return 0, 0
	}
	return b.Width / 2, b.Height / 2
}

// At returns the world-space box centered on c
func (b *BoundingBox) At(c geom.Vec2) geom.Box {
	hw, hh := b.HalfExtents()
	return geom.Box{Min: geom.V(c.X-hw, c.Y-hh), Max: geom.V(c.X+hw, c.Y+hh)}
}
