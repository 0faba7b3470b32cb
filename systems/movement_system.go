package systems

import (
	"image/color"
	"math"

	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

// Projectile defaults used when the player fires
const (
	ProjectileSpeed    = 300.0
	ProjectileLifetime = 1.5
	ProjectileSize     = 4.0
	ProjectileDamage   = 1
)

// MovementSystem turns player intents into rigid body velocity: horizontal
// acceleration and deceleration, jumping with a held boost, facing and firing.
// It runs before PhysicsSystem so the velocity it writes is integrated in the same step.
type MovementSystem struct {
	ecs.BaseSystem
	input Input

	// previous step intents, for edge triggered actions
	lastJump bool
	lastFire bool
}

// NewMovementSystem creates a movement system reading from input
func NewMovementSystem(input Input) *MovementSystem {
	return &MovementSystem{
		BaseSystem: ecs.NewBaseSystem(
			components.PlayerID,
			components.PlayerMovementID,
			components.RigidBodyID,
			components.PositionID,
		),
		input: input,
	}
}

// SetInput replaces the intent source
func (s *MovementSystem) SetInput(input Input) {
	s.input = input
}

// Update applies the current intent to every player
func (s *MovementSystem) Update(dt float64) {
	var intent Intent
	if s.input != nil {
		intent = s.input.Intent()
	}
	jumpPressed := intent.Jump && !s.lastJump
	firePressed := intent.Fire && !s.lastFire
	s.lastJump = intent.Jump
	s.lastFire = intent.Fire

	s.Bundle().Each(func(e *ecs.Entity) {
		body := ecs.MustGet[*components.RigidBody](e)
		pm := ecs.MustGet[*components.PlayerMovement](e)

		vel := body.EffectiveVelocity()
		vel.X = s.steer(vel.X, intent, pm.Tuning(), dt)
		vel.Y = s.jump(vel.Y, intent.Jump, jumpPressed, pm, dt)

		if intent.Left != intent.Right {
			if intent.Left {
				body.Face(-1)
			} else {
				body.Face(1)
			}
		}
		body.Velocity = vel.Mul(body.Direction)

		if firePressed {
			s.fire(e, body)
		}
	})
}

func (s *MovementSystem) steer(vx float64, intent Intent, tuning *components.Movement, dt float64) float64 {
	dir := 0.0
	if intent.Left {
		dir--
	}
	if intent.Right {
		dir++
	}

	if dir != 0 {
		vx += dir * tuning.Acceleration * dt
		return geom.Clamp(vx, -tuning.MaxSpeed, tuning.MaxSpeed)
	}

	// no steering: brake towards zero without overshooting
	slow := tuning.Deceleration * dt
	if math.Abs(vx) <= slow {
		return 0
	}
	return vx - geom.Sign(vx)*slow
}

func (s *MovementSystem) jump(vy float64, held, pressed bool, pm *components.PlayerMovement, dt float64) float64 {
	flags := pm.Flags()

	if pressed && flags.Grounded {
		flags.Jumping = true
		flags.Grounded = false
		pm.StartBoost()
		return -pm.JumpSpeed
	}

	if !held {
		pm.EndBoost()
		return vy
	}

	if flags.Jumping && vy < 0 && pm.ConsumeBoost(dt) {
		vy -= pm.JumpBoost * dt
	}
	return vy
}

// fire spawns a projectile in front of the shooter
func (s *MovementSystem) fire(shooter *ecs.Entity, body *components.RigidBody) {
	pos := ecs.MustGet[*components.Position](shooter)
	box, _ := ecs.Get[*components.BoundingBox](shooter)
	hw, _ := box.HalfExtents()

	facing := body.Direction.X
	start := pos.Vec().Add(geom.V(facing*(hw+ProjectileSize), 0))

	shot := ecs.NewEntity("projectile")
	shot.AddComponent(components.NewPosition(start.X, start.Y))

	rb := components.NewRigidBody()
	rb.Velocity = geom.V(ProjectileSpeed, 0)
	rb.Direction = geom.V(facing, 1)
	rb.ClampToMap = false
	shot.AddComponent(rb)

	shot.AddComponent(components.NewBoundingBox(ProjectileSize, ProjectileSize))
	shot.AddComponent(components.NewProjectile(ProjectileLifetime, ProjectileDamage, shooter.ID))

	r := components.NewRenderable('*', color.RGBA{255, 220, 80, 255})
	r.Layer = 1
	shot.AddComponent(r)

	world := s.World()
	if err := world.AddEntity(shot); err != nil {
		world.Logger().Error("failed to fire projectile", "shooter", shooter.ID, "error", err)
		return
	}
	world.EmitEvent(ProjectileFireEvent{Shooter: shooter, Projectile: shot})
}
