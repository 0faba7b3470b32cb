package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"ebiten-platformer/systems"
)

// DefaultHold is how long a key counts as held after its last press. Terminals
// report presses and auto-repeat but never releases.
const DefaultHold = 150 * time.Millisecond

// Command is a non-movement key action
type Command int

const (
	CommandNone Command = iota
	CommandPause
	CommandQuit
	CommandRestart
)

type control int

const (
	controlLeft control = iota
	controlRight
	controlJump
	controlFire
	controlCount
)

// KeyInput turns key events into systems.Intent. It is not safe for
// concurrent use; feed it from the goroutine that steps the session.
type KeyInput struct {
	hold    time.Duration
	now     func() time.Time
	pressed [controlCount]time.Time
}

// NewKeyInput creates a key input. A nil now uses time.Now.
func NewKeyInput(hold time.Duration, now func() time.Time) *KeyInput {
	if now == nil {
		now = time.Now
	}
	return &KeyInput{hold: hold, now: now}
}

// HandleKey records a key press and returns the command it maps to, if any
func (k *KeyInput) HandleKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyLeft:
		k.press(controlLeft)
		return CommandNone
	case tcell.KeyRight:
		k.press(controlRight)
		return CommandNone
	case tcell.KeyUp:
		k.press(controlJump)
		return CommandNone
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit
	}

	switch ev.Rune() {
	case 'h', 'a':
		k.press(controlLeft)
	case 'l', 'd':
		k.press(controlRight)
	case ' ', 'k', 'w':
		k.press(controlJump)
	case 'x', 'j':
		k.press(controlFire)
	case 'p', 'P':
		return CommandPause
	case 'r', 'R':
		return CommandRestart
	case 'q', 'Q':
		return CommandQuit
	}
	return CommandNone
}

func (k *KeyInput) press(c control) {
	k.pressed[c] = k.now()
	// opposite directions cancel each other out immediately
	switch c {
	case controlLeft:
		k.pressed[controlRight] = time.Time{}
	case controlRight:
		k.pressed[controlLeft] = time.Time{}
	}
}

func (k *KeyInput) held(c control, now time.Time) bool {
	at := k.pressed[c]
	return !at.IsZero() && now.Sub(at) < k.hold
}

// Intent implements systems.Input
func (k *KeyInput) Intent() systems.Intent {
	now := k.now()
	return systems.Intent{
		Left:  k.held(controlLeft, now),
		Right: k.held(controlRight, now),
		Jump:  k.held(controlJump, now),
		Fire:  k.held(controlFire, now),
	}
}
