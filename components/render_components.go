package components

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"ebiten-platformer/ecs"
)

// Renderable stores how the rendering layer should draw the entity
type Renderable struct {
	Glyph rune       // character used by the text-mode viewer
	Color color.RGBA // fill color used by the window renderer
	Layer int        // higher layers draw on top
}

// NewRenderable creates a renderable with the given glyph and color
func NewRenderable(glyph rune, c color.RGBA) *Renderable {
	return &Renderable{Glyph: glyph, Color: c}
}

func (*Renderable) ComponentID() ecs.ComponentID { return RenderableID }

// ParseHexColor converts a "#rrggbb" string to a color.RGBA
func ParseHexColor(hex string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if len(hex) != 7 || hex[0] != '#' {
		return c, eris.Errorf("invalid hex color %q", hex)
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, eris.Wrapf(err, "invalid hex color %q", hex)
	}
	return c, nil
}

// Camera tracks the viewport position for map scrolling
type Camera struct {
	X, Y       float64   // top-left position of the viewport in the world
	ViewWidth  float64   // viewport size in world units
	ViewHeight float64   // viewport size in world units
	Target     uuid.UUID // entity the camera follows
}

// NewCamera creates a camera following the target entity
func NewCamera(target uuid.UUID, viewWidth, viewHeight float64) *Camera {
	return &Camera{Target: target, ViewWidth: viewWidth, ViewHeight: viewHeight}
}

func (*Camera) ComponentID() ecs.ComponentID { return CameraID }

// Animation states picked from movement flags
const (
	AnimIdle = "idle"
	AnimWalk = "walk"
	AnimJump = "jump"
	AnimFall = "fall"
)

// Animation is render-only state: the current clip and frame
type Animation struct {
	State          string
	Frame          int
	Frames         int // frames per clip
	FramesPerImage int // displayed frames each image is held for

	held int
}

// NewAnimation creates an idle animation
func NewAnimation(frames, framesPerImage int) *Animation {
	return &Animation{State: AnimIdle, Frames: frames, FramesPerImage: framesPerImage}
}

func (*Animation) ComponentID() ecs.ComponentID { return AnimationID }

// Play switches to state, restarting the clip when it changes
func (a *Animation) Play(state string) {
	if a.State == state {
		return
	}
	a.State = state
	a.Frame = 0
	a.held = 0
}

// Advance moves the clip forward by one displayed frame
func (a *Animation) Advance() {
	if a.Frames <= 1 || a.FramesPerImage <= 0 {
		return
	}
	a.held++
	if a.held >= a.FramesPerImage {
		a.held = 0
		a.Frame = (a.Frame + 1) % a.Frames
	}
}
