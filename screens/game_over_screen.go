package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-platformer/session"
)

// GameOverScreen displays the game over message
type GameOverScreen struct {
	*BaseScreen
	status session.Status
}

// NewGameOverScreen creates a new game over screen
func NewGameOverScreen(status session.Status) *GameOverScreen {
	return &GameOverScreen{
		BaseScreen: NewBaseScreen(),
		status:     status,
	}
}

// Update handles input for the game over screen
func (s *GameOverScreen) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return ErrNewGame
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ErrQuit
	}
	return nil
}

// Draw draws the game over screen
func (s *GameOverScreen) Draw(screen *ebiten.Image) {
	y := screen.Bounds().Dy()/2 - 2*lineHeight
	s.drawCentered(screen, "GAME OVER", y, color.RGBA{255, 80, 80, 255})
	s.drawCentered(screen, fmt.Sprintf("Score %d", s.status.Score), y+2*lineHeight, color.White)
	s.drawCentered(screen, "R: play again  Esc: quit", y+4*lineHeight, color.White)
}
