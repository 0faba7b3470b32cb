package screens

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ModalScreen represents a popup window that appears on top of other screens
type ModalScreen struct {
	*BaseScreen
	title      string
	content    string
	width      int
	height     int
	background color.Color
	textColor  color.Color
	closeKeys  []ebiten.Key

	// OnClose runs when one of the close keys is pressed
	OnClose func()
}

// NewModalScreen creates a new modal screen closed by any of closeKeys
func NewModalScreen(title, content string, width, height int, closeKeys ...ebiten.Key) *ModalScreen {
	return &ModalScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		content:    content,
		width:      width,
		height:     height,
		background: color.RGBA{0, 0, 0, 200}, // Semi-transparent black
		textColor:  color.White,
		closeKeys:  closeKeys,
	}
}

// NewPauseScreen creates the overlay shown while the simulation is paused
func NewPauseScreen(onResume func()) *ModalScreen {
	m := NewModalScreen("PAUSED", "P or Esc: resume", 200, 70, ebiten.KeyP, ebiten.KeyEscape)
	m.OnClose = onResume
	return m
}

// SetContent replaces the body text
func (s *ModalScreen) SetContent(content string) {
	s.content = content
}

// Update implements the Screen interface
func (s *ModalScreen) Update() error {
	for _, key := range s.closeKeys {
		if inpututil.IsKeyJustPressed(key) {
			if s.OnClose != nil {
				s.OnClose()
			}
			return ErrCloseScreen
		}
	}
	return nil
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	// Calculate center position
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := float32(screenWidth-s.width) / 2
	y := float32(screenHeight-s.height) / 2

	vector.DrawFilledRect(screen, x, y, float32(s.width), float32(s.height), s.background, false)
	vector.StrokeRect(screen, x, y, float32(s.width), float32(s.height), 1, color.White, false)

	titleX := int(x) + (s.width-len(s.title)*charWidth)/2
	s.drawText(screen, s.title, titleX, int(y)+10, s.textColor)

	for i, line := range strings.Split(s.content, "\n") {
		s.drawText(screen, line, int(x)+10, int(y)+30+i*lineHeight, s.textColor)
	}
}
