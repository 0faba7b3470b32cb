package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/tilemap"
)

// PatrolSpeed is the walking speed of patrolling entities
const PatrolSpeed = 40.0

// AISystem makes non-player walkers patrol: they walk until a wall or a ledge
// and then turn around. It runs before PhysicsSystem.
type AISystem struct {
	ecs.BaseSystem
	tiles *tilemap.TileMap
	subs  []ecs.Subscription

	blocked map[*ecs.Entity]bool
}

// NewAISystem creates an AI system using tiles for ledge detection (which may be nil)
func NewAISystem(tiles *tilemap.TileMap) *AISystem {
	return &AISystem{
		BaseSystem: ecs.NewBaseSystem(components.MovementID, components.RigidBodyID, components.PositionID),
		tiles:      tiles,
		blocked:    make(map[*ecs.Entity]bool),
	}
}

// SetTileMap replaces the map used for ledge detection
func (s *AISystem) SetTileMap(tiles *tilemap.TileMap) {
	s.tiles = tiles
}

// AddedToWorld subscribes to horizontal collisions and clamps
func (s *AISystem) AddedToWorld() {
	em := s.World().GetEventManager()
	s.subs = append(s.subs,
		em.Subscribe(EventTileCollision, func(ev ecs.Event) {
			if hit := ev.(TileCollisionEvent); hit.Axis == AxisX {
				s.block(hit.Entity)
			}
		}),
		em.Subscribe(EventBoundaryClamp, func(ev ecs.Event) {
			if clamp := ev.(BoundaryClampEvent); clamp.Axis == AxisX {
				s.block(clamp.Entity)
			}
		}),
	)
}

// RemovedFromWorld drops the subscriptions
func (s *AISystem) RemovedFromWorld() {
	em := s.World().GetEventManager()
	for _, sub := range s.subs {
		em.Unsubscribe(sub)
	}
	s.subs = nil
}

func (s *AISystem) block(e *ecs.Entity) {
	if s.Bundle().Contains(e) {
		s.blocked[e] = true
	}
}

// Update turns blocked walkers around and keeps them at patrol speed
func (s *AISystem) Update(dt float64) {
	s.Bundle().Each(func(e *ecs.Entity) {
		body := ecs.MustGet[*components.RigidBody](e)
		move := ecs.MustGet[*components.Movement](e)

		if s.blocked[e] || (move.Grounded && s.atLedge(e, body)) {
			body.Face(-body.Direction.X)
		}
		body.Velocity.X = PatrolSpeed
	})
	clear(s.blocked)
}

// atLedge reports whether the cell ahead of the feet has nothing solid below it
func (s *AISystem) atLedge(e *ecs.Entity, body *components.RigidBody) bool {
	if s.tiles == nil {
		return false
	}
	pos := ecs.MustGet[*components.Position](e)
	box, _ := ecs.Get[*components.BoundingBox](e)
	hw, hh := box.HalfExtents()

	aheadX := pos.X + body.Direction.X*(hw+1)
	belowY := pos.Y + hh + 1
	tile, ok := s.tiles.GetTileAtCoords(aheadX, belowY)
	return ok && !tile.Solid
}
