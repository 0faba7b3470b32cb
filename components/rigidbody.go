package components

import (
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

// RigidBody holds the physical state PhysicsSystem integrates.
// Displacement per step is Velocity * Direction * dt, so Direction carries the
// facing sign while Velocity.X is usually a speed.
type RigidBody struct {
	Velocity  geom.Vec2
	Direction geom.Vec2 // each axis is -1 or 1

	Collide    bool    // resolve against solid tiles
	Gravity    bool    // affected by world gravity
	ClampToMap bool    // keep inside the map boundary
	Bounciness float64 // 0 stops on impact, 1 reflects at full speed
}

// NewRigidBody creates a body facing right/down that collides and stays on the map
func NewRigidBody() *RigidBody {
	return &RigidBody{
		Direction:  geom.V(1, 1),
		Collide:    true,
		ClampToMap: true,
	}
}

func (*RigidBody) ComponentID() ecs.ComponentID { return RigidBodyID }

// EffectiveVelocity returns the signed velocity in world units per second
func (r *RigidBody) EffectiveVelocity() geom.Vec2 {
	return r.Velocity.Mul(r.Direction)
}

// Face sets the horizontal direction from the sign of dx. Zero keeps the current facing.
func (r *RigidBody) Face(dx float64) {
	if s := geom.Sign(dx); s != 0 {
		r.Direction.X = s
	}
}

// normalize forces each direction axis to -1 or 1
func (r *RigidBody) normalize() {
	if r.Direction.X >= 0 {
		r.Direction.X = 1
	} else {
		r.Direction.X = -1
	}
	if r.Direction.Y >= 0 {
		r.Direction.Y = 1
	} else {
		r.Direction.Y = -1
	}
	r.Bounciness = geom.Clamp(r.Bounciness, 0, 1)
}
