package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
)

// ProjectileSystem ages projectiles and removes them once they expire or hit a tile
type ProjectileSystem struct {
	ecs.BaseSystem
	collisions ecs.Subscription
}

// NewProjectileSystem creates a projectile system
func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{
		BaseSystem: ecs.NewBaseSystem(components.ProjectileID, components.PositionID),
	}
}

// AddedToWorld subscribes to tile collisions
func (s *ProjectileSystem) AddedToWorld() {
	s.collisions = s.World().GetEventManager().Subscribe(EventTileCollision, func(ev ecs.Event) {
		hit := ev.(TileCollisionEvent)
		if p, ok := ecs.Get[*components.Projectile](hit.Entity); ok {
			p.MarkHit()
		}
	})
}

// RemovedFromWorld drops the tile collision subscription
func (s *ProjectileSystem) RemovedFromWorld() {
	s.World().GetEventManager().Unsubscribe(s.collisions)
}

// Update counts down lifetimes and removes expired projectiles
func (s *ProjectileSystem) Update(dt float64) {
	world := s.World()
	s.Bundle().Each(func(e *ecs.Entity) {
		p := ecs.MustGet[*components.Projectile](e)
		p.Lifetime -= dt
		if p.Expired() {
			world.RemoveEntity(e)
		}
	})
}
