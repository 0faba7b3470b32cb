package components

import (
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

// Position stores the entity center in world units. The previous position is
// cached every step for render interpolation.
type Position struct {
	X, Y float64

	prev  geom.Vec2
	dirty bool
}

// NewPosition creates a position at (x, y) with no pending motion
func NewPosition(x, y float64) *Position {
	return &Position{X: x, Y: y, prev: geom.V(x, y), dirty: true}
}

func (*Position) ComponentID() ecs.ComponentID { return PositionID }

// Vec returns the current coordinate
func (p *Position) Vec() geom.Vec2 {
	return geom.V(p.X, p.Y)
}

// Set moves the position and marks the transform stale when it changed
func (p *Position) Set(v geom.Vec2) {
	if v.X == p.X && v.Y == p.Y {
		return
	}
	p.X, p.Y = v.X, v.Y
	p.dirty = true
}

// Teleport moves the position without interpolating from the old one
func (p *Position) Teleport(v geom.Vec2) {
	p.Set(v)
	p.prev = v
}

// CachePrevious remembers the current coordinate as the interpolation start
func (p *Position) CachePrevious() {
	p.prev = p.Vec()
}

// Previous returns the coordinate cached at the start of the last step
func (p *Position) Previous() geom.Vec2 {
	return p.prev
}

// Transform returns the interpolated render coordinate for alpha in [0, 1]
func (p *Position) Transform(alpha float64) geom.Vec2 {
	return p.prev.Lerp(p.Vec(), alpha)
}

// Dirty reports whether the coordinate changed since the renderer last consumed it
func (p *Position) Dirty() bool {
	return p.dirty
}

// MarkClean is called by the renderer after consuming the transform
func (p *Position) MarkClean() {
	p.dirty = false
}
