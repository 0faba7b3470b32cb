package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// StartScreen handles the game's start menu
type StartScreen struct {
	*BaseScreen
	title          string
	selectedOption int
	options        []string
	titleColor     color.Color
	optionColor    color.Color
	selectedColor  color.Color
}

// NewStartScreen creates a new start screen
func NewStartScreen(title string) *StartScreen {
	return &StartScreen{
		BaseScreen:    NewBaseScreen(),
		title:         title,
		options:       []string{"New Game", "Quit"},
		titleColor:    color.RGBA{255, 230, 150, 255}, // Gold
		optionColor:   color.RGBA{200, 200, 200, 255}, // Light Gray
		selectedColor: color.RGBA{255, 255, 255, 255}, // White
	}
}

// Update handles input for the start screen
func (s *StartScreen) Update() error {
	// Handle arrow key navigation
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.selectedOption = (s.selectedOption - 1 + len(s.options)) % len(s.options)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.selectedOption = (s.selectedOption + 1) % len(s.options)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if s.selectedOption == 0 {
			return ErrNewGame
		}
		return ErrQuit
	}
	return nil
}

// Draw renders the start screen
func (s *StartScreen) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	centerY := screen.Bounds().Dy() / 2
	s.drawCentered(screen, s.title, centerY-3*lineHeight, s.titleColor)

	optionSpacing := 24
	startY := centerY - (len(s.options)*optionSpacing)/2
	for i, option := range s.options {
		textColor := s.optionColor
		if i == s.selectedOption {
			textColor = s.selectedColor
			option = "> " + option + " <"
		}
		s.drawCentered(screen, option, startY+i*optionSpacing, textColor)
	}

	s.drawCentered(screen, "Arrows: move  Space: jump  X: fire  P: pause", screen.Bounds().Dy()-2*lineHeight, s.optionColor)
}
