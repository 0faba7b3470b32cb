package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"ebiten-platformer/config"
)

// Debug font metrics of ebitenutil.DebugPrint
const (
	charWidth  = 6
	lineHeight = 16
)

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	// Screen dimensions
	width  int
	height int

	line *ebiten.Image // scratch buffer for colored text
}

// NewBaseScreen creates a new base screen
func NewBaseScreen() *BaseScreen {
	w, h := config.GetScreenDimensions()
	return &BaseScreen{width: w, height: h}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(screen *ebiten.Image) {
	// Base screen does nothing by default
}

// Layout implements the Screen interface. Every screen uses the fixed
// logical resolution and lets ebiten scale it to the window.
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}

// GetWidth returns the screen width
func (s *BaseScreen) GetWidth() int {
	return s.width
}

// GetHeight returns the screen height
func (s *BaseScreen) GetHeight() int {
	return s.height
}

// drawText prints one line of text in clr. ebitenutil only prints white, so the
// line is rendered into a scratch image and tinted on the way out.
func (s *BaseScreen) drawText(dst *ebiten.Image, text string, x, y int, clr color.Color) {
	w := len(text)*charWidth + charWidth
	if s.line == nil || s.line.Bounds().Dx() < w {
		s.line = ebiten.NewImage(max(w, s.width), lineHeight)
	}
	s.line.Clear()
	ebitenutil.DebugPrintAt(s.line, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(s.line, op)
}

// drawCentered prints text horizontally centered on dst
func (s *BaseScreen) drawCentered(dst *ebiten.Image, text string, y int, clr color.Color) {
	x := (dst.Bounds().Dx() - len(text)*charWidth) / 2
	s.drawText(dst, text, x, y, clr)
}
