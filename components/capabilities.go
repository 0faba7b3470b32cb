package components

import "ebiten-platformer/ecs"

// MotionState is implemented by components carrying derived movement flags
type MotionState interface {
	Flags() *MotionFlags
}

// MovementTuning is implemented by components carrying walking and jumping constants
type MovementTuning interface {
	Tuning() *Movement
}

// Consumable is implemented by components that a collector can pick up
type Consumable interface {
	// Consume applies the item to the collector. applied reports whether it had
	// any effect, depleted whether the item is used up.
	Consume(collector *ecs.Entity) (applied, depleted bool)
}

// CombatStats is implemented by components that can take damage and be healed
type CombatStats interface {
	Damage(amount int) int
	Heal(amount int) int
	Alive() bool
}
