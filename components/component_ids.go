package components

import (
	"ebiten-platformer/ecs"
)

// Define component IDs for our game. Zero is left unused.
const (
	PositionID ecs.ComponentID = iota + 1
	RigidBodyID
	BoundingBoxID
	MovementID
	PlayerMovementID
	PlayerID
	CameraID
	RenderableID
	AnimationID
	ProjectileID
	CollectorID
	HealthID
	CoinID
	HealthPackID
	HazardID
)
