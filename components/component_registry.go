package components

import (
	"image/color"

	"ebiten-platformer/ecs"
)

// componentConstructors maps blueprint component names to their default value.
// Metadata is applied on top of the defaults.
var componentConstructors = map[string]func() ecs.Component{
	"Position":       func() ecs.Component { return NewPosition(0, 0) },
	"RigidBody":      func() ecs.Component { return NewRigidBody() },
	"BoundingBox":    func() ecs.Component { return NewBoundingBox(0, 0) },
	"Movement":       func() ecs.Component { return NewMovement() },
	"PlayerMovement": func() ecs.Component { return NewPlayerMovement() },
	"Player":         func() ecs.Component { return &Player{} },
	"Camera":         func() ecs.Component { return &Camera{} },
	"Renderable":     func() ecs.Component { return NewRenderable('?', color.RGBA{255, 255, 255, 255}) },
	"Animation":      func() ecs.Component { return NewAnimation(4, 8) },
	"Projectile":     func() ecs.Component { return &Projectile{Lifetime: 1} },
	"Collector":      func() ecs.Component { return &Collector{} },
	"Health":         func() ecs.Component { return NewHealth(100) },
	"Coin":           func() ecs.Component { return &Coin{Value: 1} },
	"HealthPack":     func() ecs.Component { return &HealthPack{Amount: 25, Uses: 1} },
	"Hazard":         func() ecs.Component { return &Hazard{Damage: 10, Cooldown: 1} },
}

// NewRegistry returns a registry that knows every component of the game.
// Each call returns an independent instance.
func NewRegistry() *ecs.Registry {
	r := ecs.NewRegistry()
	for name, newDefault := range componentConstructors {
		r.Register(name, constructor(newDefault))
	}
	return r
}

func constructor(newDefault func() ecs.Component) ecs.Constructor {
	return func(meta ecs.Metadata) (ecs.Component, error) {
		c := newDefault()
		if err := ApplyMetadata(c, meta); err != nil {
			return nil, err
		}
		finish(c)
		return c, nil
	}
}

// finish restores invariants that raw metadata may have broken
func finish(c ecs.Component) {
	switch comp := c.(type) {
	case *Position:
		comp.Teleport(comp.Vec())
	case *RigidBody:
		comp.normalize()
	case *Health:
		comp.Clamp()
	}
}
