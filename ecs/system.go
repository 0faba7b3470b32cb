package ecs

import "github.com/rotisserie/eris"

// System declares the signature it operates on. A system participates in the
// fixed simulation step by implementing Updater, and in the per-frame render
// pass by implementing Renderer. Systems embed BaseSystem.
type System interface {
	Signature() Signature
	// AddedToWorld is called after the world reference is set
	AddedToWorld()
	// RemovedFromWorld is called before the world reference is cleared
	RemovedFromWorld()

	base() *BaseSystem
}

// Updater runs once per fixed simulation step with the step duration in seconds
type Updater interface {
	Update(dt float64)
}

// Renderer runs once per displayed frame with the interpolation factor in [0, 1)
type Renderer interface {
	Render(alpha float64)
}

// BaseSystem carries the signature and world back-reference of a system
type BaseSystem struct {
	signature Signature
	world     *World
}

// NewBaseSystem creates a base for a system operating on the given components
func NewBaseSystem(ids ...ComponentID) BaseSystem {
	return BaseSystem{signature: NewSignature(ids...)}
}

// Signature returns the components the system requires
func (s *BaseSystem) Signature() Signature {
	return s.signature
}

// World returns the world the system is attached to.
// Panics when the system is not attached.
func (s *BaseSystem) World() *World {
	if s.world == nil {
		panic(eris.Wrap(ErrSystemDetached, "world accessed before AddedToWorld"))
	}
	return s.world
}

// Attached reports whether the system currently has a world
func (s *BaseSystem) Attached() bool {
	return s.world != nil
}

// Bundle returns the current bundle for the system signature
func (s *BaseSystem) Bundle() *Bundle {
	return s.World().Bundle(s.signature)
}

// Entities returns a snapshot of the entities matching the system signature
func (s *BaseSystem) Entities() []*Entity {
	return s.Bundle().Entities()
}

// AddedToWorld is a no-op hook
func (s *BaseSystem) AddedToWorld() {}

// RemovedFromWorld is a no-op hook
func (s *BaseSystem) RemovedFromWorld() {}

func (s *BaseSystem) base() *BaseSystem {
	return s
}
