package systems

import (
	"ebiten-platformer/ecs"
	"ebiten-platformer/tilemap"
)

// Event type constants
const (
	EventTileCollision  ecs.EventType = "tile_collision"
	EventBoundaryClamp  ecs.EventType = "boundary_clamp"
	EventProjectileFire ecs.EventType = "projectile_fire"
	EventItemConsumed   ecs.EventType = "item_consumed"
	EventCameraUpdate   ecs.EventType = "camera_update"
	EventDamage         ecs.EventType = "damage"
	EventDeath          ecs.EventType = "death"
	EventGameOver       ecs.EventType = "game_over"
)

// Axis names the axis a collision was resolved on
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// TileCollisionEvent is emitted when a body is snapped against a solid tile
type TileCollisionEvent struct {
	Entity *ecs.Entity
	Tile   *tilemap.Tile
	Axis   Axis
	Speed  float64 // absolute axis speed at impact
}

// Type returns the event type
func (e TileCollisionEvent) Type() ecs.EventType {
	return EventTileCollision
}

// BoundaryClampEvent is emitted when a body is held inside the map boundary
type BoundaryClampEvent struct {
	Entity *ecs.Entity
	Axis   Axis
}

// Type returns the event type
func (e BoundaryClampEvent) Type() ecs.EventType {
	return EventBoundaryClamp
}

// ProjectileFireEvent is emitted when an entity fires a projectile
type ProjectileFireEvent struct {
	Shooter    *ecs.Entity
	Projectile *ecs.Entity
}

// Type returns the event type
func (e ProjectileFireEvent) Type() ecs.EventType {
	return EventProjectileFire
}

// ItemConsumedEvent is emitted when an item has an effect on the collector that touches it
type ItemConsumedEvent struct {
	Collector *ecs.Entity
	Item      *ecs.Entity
	Depleted  bool
}

// Type returns the event type
func (e ItemConsumedEvent) Type() ecs.EventType {
	return EventItemConsumed
}

// CameraUpdateEvent is emitted when a camera moves
type CameraUpdateEvent struct {
	Camera *ecs.Entity
	X, Y   float64
}

// Type returns the event type
func (e CameraUpdateEvent) Type() ecs.EventType {
	return EventCameraUpdate
}

// DamageEvent is emitted when a projectile hurts an entity
type DamageEvent struct {
	Source *ecs.Entity // the projectile
	Target *ecs.Entity
	Amount int
}

// Type returns the event type
func (e DamageEvent) Type() ecs.EventType {
	return EventDamage
}

// DeathEvent is emitted when an entity runs out of health
type DeathEvent struct {
	Entity *ecs.Entity
}

// Type returns the event type
func (e DeathEvent) Type() ecs.EventType {
	return EventDeath
}

// GameOverEvent is emitted when the player dies
type GameOverEvent struct {
	Player *ecs.Entity
}

// Type returns the event type
func (e GameOverEvent) Type() ecs.EventType {
	return EventGameOver
}
