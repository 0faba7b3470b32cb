package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
)

// CombatSystem applies projectile damage to the entities projectiles touch.
// A projectile never hurts its owner and is spent on the first target it damages.
// Hazards hurt the players they touch.
type CombatSystem struct {
	ecs.BaseSystem
	targets *ecs.Bundle
	hazards *ecs.Bundle
	players *ecs.Bundle
}

// NewCombatSystem creates a new combat system
func NewCombatSystem() *CombatSystem {
	return &CombatSystem{
		BaseSystem: ecs.NewBaseSystem(components.ProjectileID, components.PositionID, components.BoundingBoxID),
	}
}

// AddedToWorld resolves the bundle of possible targets
func (s *CombatSystem) AddedToWorld() {
	world := s.World()
	s.targets = world.Query(components.PositionID, components.BoundingBoxID)
	s.hazards = world.Query(components.HazardID, components.PositionID, components.BoundingBoxID)
	s.players = world.Query(components.PlayerID, components.PositionID, components.BoundingBoxID)
}

// Update resolves projectile hits for this step
func (s *CombatSystem) Update(dt float64) {
	world := s.World()
	s.Bundle().Each(func(shot *ecs.Entity) {
		p := ecs.MustGet[*components.Projectile](shot)
		if p.Expired() {
			return
		}
		reach := boxOf(shot)

		s.targets.Each(func(target *ecs.Entity) {
			if p.Expired() || target == shot || target.ID == p.Owner {
				return
			}
			stats, ok := ecs.Capability[components.CombatStats](target)
			if !ok || !stats.Alive() || !reach.Overlaps(boxOf(target)) {
				return
			}

			dealt := stats.Damage(p.Damage)
			p.MarkHit()
			world.EmitEvent(DamageEvent{Source: shot, Target: target, Amount: dealt})
		})
	})

	s.hazards.Each(func(hazard *ecs.Entity) {
		h := ecs.MustGet[*components.Hazard](hazard)
		if !h.Tick(dt) {
			return
		}
		reach := boxOf(hazard)

		s.players.Each(func(player *ecs.Entity) {
			stats, ok := ecs.Capability[components.CombatStats](player)
			if !ok || !stats.Alive() || !reach.Overlaps(boxOf(player)) {
				return
			}
			dealt := stats.Damage(h.Damage)
			h.Strike()
			world.EmitEvent(DamageEvent{Source: hazard, Target: player, Amount: dealt})
		})
	})
}
