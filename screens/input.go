package screens

import (
	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-platformer/systems"
)

// Key bindings of the window front end
var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	fireKeys  = []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}
)

// KeyboardInput reads the player's intent from the ebiten keyboard state.
// Edge detection for jump and fire happens in MovementSystem.
type KeyboardInput struct{}

// Intent implements systems.Input
func (KeyboardInput) Intent() systems.Intent {
	return systems.Intent{
		Left:  anyPressed(leftKeys),
		Right: anyPressed(rightKeys),
		Jump:  anyPressed(jumpKeys),
		Fire:  anyPressed(fireKeys),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
