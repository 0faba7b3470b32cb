package components

import (
	"ebiten-platformer/ecs"
)

// MotionFlags is the movement state derived by PhysicsSystem after each step
type MotionFlags struct {
	Grounded bool
	Falling  bool
	Walking  bool
	Jumping  bool
}

// Movement holds gameplay tuning for walking entities plus their derived flags
type Movement struct {
	Acceleration float64 // horizontal speed gained per second while steering
	Deceleration float64 // horizontal speed lost per second without input
	MaxSpeed     float64 // horizontal speed cap
	JumpSpeed    float64 // upward speed applied on take-off
	JumpBoost    float64 // extra upward acceleration while jump is held

	MotionFlags
}

// NewMovement creates default tuning for a walking entity
func NewMovement() *Movement {
	return &Movement{
		Acceleration: 600,
		Deceleration: 900,
		MaxSpeed:     150,
		JumpSpeed:    320,
		JumpBoost:    500,
	}
}

func (*Movement) ComponentID() ecs.ComponentID { return MovementID }

// Flags exposes the derived movement flags
func (m *Movement) Flags() *MotionFlags {
	return &m.MotionFlags
}

// Tuning exposes the movement constants
func (m *Movement) Tuning() *Movement {
	return m
}

// PlayerMovement is the player variant of Movement: jump boost is only
// sustained for a limited time after take-off.
type PlayerMovement struct {
	Movement
	MaxBoostTime float64 // seconds the jump boost can be held

	boostLeft float64
}

// NewPlayerMovement creates default player tuning
func NewPlayerMovement() *PlayerMovement {
	return &PlayerMovement{
		Movement:     *NewMovement(),
		MaxBoostTime: 0.25,
	}
}

func (*PlayerMovement) ComponentID() ecs.ComponentID { return PlayerMovementID }

// StartBoost resets the jump boost window at take-off
func (p *PlayerMovement) StartBoost() {
	p.boostLeft = p.MaxBoostTime
}

// ConsumeBoost spends dt of boost time and reports whether boost was still available
func (p *PlayerMovement) ConsumeBoost(dt float64) bool {
	if p.boostLeft <= 0 {
		return false
	}
	p.boostLeft -= dt
	return true
}

// EndBoost cancels the remaining boost window
func (p *PlayerMovement) EndBoost() {
	p.boostLeft = 0
}

// Player tags the entity controlled by input
type Player struct{}

func (*Player) ComponentID() ecs.ComponentID { return PlayerID }
