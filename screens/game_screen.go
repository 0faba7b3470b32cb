package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-platformer/session"
	"ebiten-platformer/systems"
)

const hudMessages = 4

var (
	skyColor   = color.RGBA{24, 26, 40, 255}
	hudColor   = color.RGBA{230, 230, 230, 255}
	solidColor = color.RGBA{110, 84, 60, 255}
	decorColor = color.RGBA{60, 140, 60, 255}
)

// GameScreen runs a session and draws its scene. Overlays (pause, game over,
// debug) sit on a private screen stack above the world.
type GameScreen struct {
	*BaseScreen
	session *session.Session
	tileset *Tileset // nil draws shapes instead of sprites
	overlay *ScreenStack

	paused       bool // paused by the player
	focusPaused  bool // paused because the window lost focus
	gameOverSeen bool
}

// NewGameScreen creates a new game screen. tileset may be nil.
func NewGameScreen(s *session.Session, tileset *Tileset) *GameScreen {
	return &GameScreen{
		BaseScreen: NewBaseScreen(),
		session:    s,
		tileset:    tileset,
		overlay:    NewScreenStack(),
	}
}

// Session returns the running session
func (s *GameScreen) Session() *session.Session {
	return s.session
}

// Update handles game updates
func (s *GameScreen) Update() error {
	// Toggle the debug window with F1
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if _, open := s.overlay.Peek().(*DebugScreen); open {
			s.overlay.Pop()
		} else {
			s.overlay.Push(NewDebugScreen(s.session))
		}
	}

	s.trackFocus()

	if s.overlay.Len() > 0 {
		if err := s.overlay.Update(); err != nil {
			return err
		}
	} else if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.pause()
	}

	s.session.Frame()

	if s.session.GameOver() && !s.gameOverSeen {
		s.gameOverSeen = true
		s.session.Pause()
		s.overlay.Push(NewGameOverScreen(s.session.Status()))
	}
	return nil
}

func (s *GameScreen) pause() {
	s.paused = true
	s.session.Pause()
	s.overlay.Push(NewPauseScreen(func() {
		s.paused = false
		if !s.focusPaused {
			s.session.Resume()
		}
	}))
}

// trackFocus pauses the simulation while the window is in the background
func (s *GameScreen) trackFocus() {
	focused := ebiten.IsFocused()
	switch {
	case !focused && !s.focusPaused:
		s.focusPaused = true
		s.session.Pause()
	case focused && s.focusPaused:
		s.focusPaused = false
		if !s.paused && !s.gameOverSeen {
			s.session.Resume()
		}
	}
}

// Draw draws the game screen
func (s *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	scene := s.session.Scene()
	s.drawTiles(screen, scene)
	s.drawSprites(screen, scene)
	s.drawHUD(screen)

	s.overlay.Draw(screen)
}

func (s *GameScreen) drawTiles(screen *ebiten.Image, scene *systems.Scene) {
	size := float64(scene.TileSize)
	for _, tile := range scene.Tiles {
		x := tile.Position.X - scene.Camera.X
		y := tile.Position.Y - scene.Camera.Y
		if s.tileset != nil && tile.Terrain.TypeID != 0 {
			s.tileset.DrawTerrain(screen, tile.Terrain, x, y, size)
			continue
		}
		switch {
		case tile.Solid:
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), solidColor, false)
		case tile.Terrain.TypeID != 0:
			// decoration: a tuft at the bottom of the cell
			vector.DrawFilledRect(screen, float32(x), float32(y+size*0.75), float32(size), float32(size/4), decorColor, false)
		}
	}
}

func (s *GameScreen) drawSprites(screen *ebiten.Image, scene *systems.Scene) {
	for _, sp := range scene.Sprites {
		box := sp.Box
		if s.tileset != nil {
			size := max(box.Width(), box.Height())
			c := box.Center()
			s.tileset.DrawGlyph(screen, sp.Glyph, c.X-size/2, c.Y-size/2, size, sp.Color)
			continue
		}
		vector.DrawFilledRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Width()), float32(box.Height()), sp.Color, false)
	}
}

func (s *GameScreen) drawHUD(screen *ebiten.Image) {
	st := s.session.Status()
	s.drawText(screen, fmt.Sprintf("HP %d/%d  Score %d", st.Health, st.MaxHealth, st.Score), 4, 2, hudColor)

	bottom := screen.Bounds().Dy() - lineHeight - 2
	for i, msg := range s.session.Messages().RecentMessages(hudMessages) {
		s.drawText(screen, msg.Line(), 4, bottom-i*lineHeight, msg.Color())
	}
}
