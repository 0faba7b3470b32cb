package systems

import (
	"math"

	"ebiten-platformer/components"
	"ebiten-platformer/config"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

// Reflected speeds below this are zeroed so bouncing bodies come to rest
const bounceCutoff = 20.0

// PhysicsSystem integrates gravity and velocity, then resolves collisions
// against the tile map one axis at a time and keeps bodies inside the map.
//
// Collision is sampled at three points of the leading edge, not swept. A body
// must not move more than one tile per step on any axis or it can pass through
// thin geometry, so displacement is capped at MaxStepFraction of a tile.
type PhysicsSystem struct {
	ecs.BaseSystem
	tiles *tilemap.TileMap

	gravity         float64
	epsilon         float64
	maxStepFraction float64
}

// NewPhysicsSystem creates a physics system resolving against tiles (which may be nil)
func NewPhysicsSystem(tiles *tilemap.TileMap, cfg config.Physics) *PhysicsSystem {
	return &PhysicsSystem{
		BaseSystem:      ecs.NewBaseSystem(components.PositionID, components.RigidBodyID),
		tiles:           tiles,
		gravity:         cfg.Gravity,
		epsilon:         cfg.Epsilon,
		maxStepFraction: cfg.MaxStepFraction,
	}
}

// SetTileMap replaces the map bodies collide with
func (s *PhysicsSystem) SetTileMap(tiles *tilemap.TileMap) {
	s.tiles = tiles
}

// TileMap returns the map bodies collide with
func (s *PhysicsSystem) TileMap() *tilemap.TileMap {
	return s.tiles
}

// Update advances every body by one fixed step
func (s *PhysicsSystem) Update(dt float64) {
	s.Bundle().Each(func(e *ecs.Entity) {
		s.step(e, dt)
	})
}

func (s *PhysicsSystem) step(e *ecs.Entity, dt float64) {
	pos := ecs.MustGet[*components.Position](e)
	body := ecs.MustGet[*components.RigidBody](e)
	box, _ := ecs.Get[*components.BoundingBox](e)
	hw, hh := box.HalfExtents()

	pos.CachePrevious()

	vel := body.EffectiveVelocity()
	if body.Gravity {
		vel.Y = math.Min(vel.Y+s.gravity*dt, s.gravity)
	}

	disp := vel.Scale(dt)
	if s.tiles != nil && s.maxStepFraction > 0 {
		limit := s.maxStepFraction * float64(s.tiles.TileSize())
		disp.X = geom.Clamp(disp.X, -limit, limit)
		disp.Y = geom.Clamp(disp.Y, -limit, limit)
	}

	cur := pos.Vec()
	next := cur.Add(disp)

	if body.Collide && s.tiles != nil {
		if disp.Y != 0 {
			if tile, ok := s.resolveVertical(cur.X, &next.Y, hw, hh, disp.Y); ok {
				s.EmitTileCollision(e, tile, AxisY, math.Abs(vel.Y))
				vel.Y = s.bounce(vel.Y, body.Bounciness)
			}
		}
		if disp.X != 0 {
			if tile, ok := s.resolveHorizontal(&next.X, next.Y, hw, hh, disp.X); ok {
				s.EmitTileCollision(e, tile, AxisX, math.Abs(vel.X))
				vel.X = s.bounce(vel.X, body.Bounciness)
				// a rebound turns the body around and Velocity.X stays a speed
				body.Face(vel.X)
			}
		}
	}

	if body.ClampToMap && s.tiles != nil {
		bounds := s.tiles.Boundary().Inset(hw, hh)
		if x := geom.Clamp(next.X, bounds.Min.X, bounds.Max.X); x != next.X {
			next.X = x
			vel.X = 0
			s.World().EmitEvent(BoundaryClampEvent{Entity: e, Axis: AxisX})
		}
		if y := geom.Clamp(next.Y, bounds.Min.Y, bounds.Max.Y); y != next.Y {
			next.Y = y
			vel.Y = 0
			s.World().EmitEvent(BoundaryClampEvent{Entity: e, Axis: AxisY})
		}
	}

	pos.Set(next)
	// Direction components are +-1, so multiplying again recovers the stored velocity
	body.Velocity = vel.Mul(body.Direction)

	if state, ok := ecs.Capability[components.MotionState](e); ok {
		s.updateFlags(state.Flags(), next, vel, hw, hh)
	}
}

// EmitTileCollision publishes a tile hit on the world event manager
func (s *PhysicsSystem) EmitTileCollision(e *ecs.Entity, tile *tilemap.Tile, axis Axis, speed float64) {
	s.World().EmitEvent(TileCollisionEvent{Entity: e, Tile: tile, Axis: axis, Speed: speed})
}

// resolveVertical tests the leading horizontal edge at the candidate y. On a hit,
// y is snapped just outside the tile.
func (s *PhysicsSystem) resolveVertical(x float64, y *float64, hw, hh, dy float64) (*tilemap.Tile, bool) {
	edge := *y - hh
	if dy > 0 {
		edge = *y + hh
	}

	tile, ok := s.firstSolid([3]geom.Vec2{
		geom.V(x-hw, edge),
		geom.V(x, edge),
		geom.V(x+hw, edge),
	})
	if !ok {
		return nil, false
	}

	size := float64(s.tiles.TileSize())
	if dy > 0 {
		*y = tile.Position.Y - hh - s.epsilon
	} else {
		*y = tile.Position.Y + size + hh + s.epsilon
	}
	return tile, true
}

// resolveHorizontal tests the leading vertical edge at the candidate x. On a hit,
// x is snapped just outside the tile.
func (s *PhysicsSystem) resolveHorizontal(x *float64, y, hw, hh, dx float64) (*tilemap.Tile, bool) {
	edge := *x - hw
	if dx > 0 {
		edge = *x + hw
	}

	tile, ok := s.firstSolid([3]geom.Vec2{
		geom.V(edge, y-hh),
		geom.V(edge, y),
		geom.V(edge, y+hh),
	})
	if !ok {
		return nil, false
	}

	size := float64(s.tiles.TileSize())
	if dx > 0 {
		*x = tile.Position.X - hw - s.epsilon
	} else {
		*x = tile.Position.X + size + hw + s.epsilon
	}
	return tile, true
}

// firstSolid returns the tile under the first sample that lands on a solid tile
func (s *PhysicsSystem) firstSolid(samples [3]geom.Vec2) (*tilemap.Tile, bool) {
	for _, p := range samples {
		if tile, ok := s.tiles.GetTileAtCoords(p.X, p.Y); ok && tile.Solid {
			return tile, true
		}
	}
	return nil, false
}

func (s *PhysicsSystem) bounce(v, bounciness float64) float64 {
	if bounciness <= 0 {
		return 0
	}
	reflected := -v * bounciness
	if math.Abs(reflected) < bounceCutoff {
		return 0
	}
	return reflected
}

// Grounded probes one pixel below the bottom edge at the three bottom samples
func (s *PhysicsSystem) Grounded(center geom.Vec2, hw, hh float64) bool {
	if s.tiles == nil {
		return false
	}
	probe := center.Y + hh + 1
	_, ok := s.firstSolid([3]geom.Vec2{
		geom.V(center.X-hw, probe),
		geom.V(center.X, probe),
		geom.V(center.X+hw, probe),
	})
	return ok
}

func (s *PhysicsSystem) updateFlags(flags *components.MotionFlags, center, vel geom.Vec2, hw, hh float64) {
	flags.Grounded = s.Grounded(center, hw, hh)
	flags.Falling = vel.Y > 0
	flags.Walking = flags.Grounded && vel.X != 0
	if flags.Grounded && vel.Y >= 0 {
		flags.Jumping = false
	}
}
