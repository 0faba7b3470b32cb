package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
)

// DeathSystem removes entities that ran out of health. The player is kept in
// the world and ends the game instead.
type DeathSystem struct {
	ecs.BaseSystem
	gameOver bool
}

// NewDeathSystem creates a new death system
func NewDeathSystem() *DeathSystem {
	return &DeathSystem{
		BaseSystem: ecs.NewBaseSystem(components.HealthID),
	}
}

// GameOver reports whether the player has died
func (s *DeathSystem) GameOver() bool {
	return s.gameOver
}

// Update checks every health component
func (s *DeathSystem) Update(dt float64) {
	world := s.World()
	s.Bundle().Each(func(e *ecs.Entity) {
		if ecs.MustGet[*components.Health](e).Alive() {
			return
		}

		if ecs.Has[*components.Player](e) {
			if !s.gameOver {
				s.gameOver = true
				world.EmitEvent(DeathEvent{Entity: e})
				world.EmitEvent(GameOverEvent{Player: e})
				world.Logger().Info("player died")
			}
			return
		}

		world.EmitEvent(DeathEvent{Entity: e})
		world.RemoveEntity(e)
	})
}
