package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
)

// AnimationSystem picks the animation clip from movement flags and advances it
// once per displayed frame. It is render-only and never touches simulation state.
type AnimationSystem struct {
	ecs.BaseSystem
}

// NewAnimationSystem creates an animation system
func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{
		BaseSystem: ecs.NewBaseSystem(components.AnimationID),
	}
}

// Render advances every animation by one frame
func (s *AnimationSystem) Render(alpha float64) {
	s.Bundle().Each(func(e *ecs.Entity) {
		anim := ecs.MustGet[*components.Animation](e)
		if state, ok := ecs.Capability[components.MotionState](e); ok {
			anim.Play(clipFor(state.Flags()))
		}
		anim.Advance()
	})
}

func clipFor(flags *components.MotionFlags) string {
	switch {
	case flags.Grounded && flags.Walking:
		return components.AnimWalk
	case flags.Grounded:
		return components.AnimIdle
	case flags.Falling:
		return components.AnimFall
	default:
		return components.AnimJump
	}
}
