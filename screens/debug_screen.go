package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-platformer/session"
)

// DebugScreen shows loop statistics and the full message log in a modal window
type DebugScreen struct {
	*BaseScreen
	session      *session.Session
	scrollOffset int
	width        int
	height       int
	background   color.Color
	textColor    color.Color
}

// NewDebugScreen creates a new debug screen
func NewDebugScreen(s *session.Session) *DebugScreen {
	return &DebugScreen{
		BaseScreen: NewBaseScreen(),
		session:    s,
		width:      420,
		height:     300,
		background: color.RGBA{0, 0, 0, 230},
		textColor:  color.White,
	}
}

// Update handles input for the debug screen
func (s *DebugScreen) Update() error {
	// Handle scrolling through messages with arrow keys
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < len(s.session.Messages().Messages)-1 {
		s.scrollOffset++
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

// Draw renders the debug screen
func (s *DebugScreen) Draw(screen *ebiten.Image) {
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := (screenWidth - s.width) / 2
	y := (screenHeight - s.height) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(s.width), float32(s.height), s.background, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(s.width), float32(s.height), 2, color.White, false)

	loop := s.session.Loop
	stats := []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("steps %d  lag %s  paused %v", loop.TotalSteps(), loop.Lag(), loop.Paused()),
		fmt.Sprintf("entities %d  bundles %d", s.session.World.EntityCount(), s.session.World.BundleCount()),
	}
	for i, line := range stats {
		s.drawText(screen, line, x+10, y+10+i*lineHeight, s.textColor)
	}

	messages := s.session.Messages().Messages
	startY := y + 20 + len(stats)*lineHeight
	maxLines := (y + s.height - lineHeight - startY) / lineHeight

	startIdx := min(s.scrollOffset, max(len(messages)-maxLines, 0))
	for i := 0; i < maxLines && startIdx+i < len(messages); i++ {
		msg := messages[startIdx+i]
		s.drawText(screen, msg.Line(), x+10, startY+i*lineHeight, msg.Color())
	}

	s.drawText(screen, "Up/Down: scroll  Esc/F1: close", x+10, y+s.height-lineHeight-2, s.textColor)
}
