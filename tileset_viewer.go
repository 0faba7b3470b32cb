package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-platformer/screens"
)

// TilesetViewer shows every cell of a tileset with its atlas coordinates, for
// picking the row and col values of tile types in level files.
type TilesetViewer struct {
	tileset       *screens.Tileset
	screenWidth   int
	screenHeight  int
	tileSize      int
	displayWidth  int    // How many tiles to display horizontally
	displayHeight int    // How many tiles to display vertically
	offsetX       int    // Scrolling offset for viewing all tiles
	offsetY       int    // Scrolling offset for viewing all tiles
	filename      string // Tileset filename
}

// NewTilesetViewer creates a new tileset viewer
func NewTilesetViewer(tileset *screens.Tileset, filename string, tileSize int) *TilesetViewer {
	displayWidth := 16
	displayHeight := 12

	return &TilesetViewer{
		tileset:       tileset,
		tileSize:      tileSize,
		screenWidth:   displayWidth*tileSize + 50,   // Add some margin
		screenHeight:  displayHeight*tileSize + 120, // Add space for header and footer
		displayWidth:  displayWidth,
		displayHeight: displayHeight,
		filename:      filename,
	}
}

// Update handles input for scrolling
func (t *TilesetViewer) Update() error {
	maxX := max(t.tileset.Width-t.displayWidth, 0)
	maxY := max(t.tileset.Height-t.displayHeight, 0)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		t.offsetX = min(t.offsetX+1, maxX)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		t.offsetX = max(t.offsetX-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		t.offsetY = min(t.offsetY+1, maxY)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		t.offsetY = max(t.offsetY-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		t.offsetY = min(t.offsetY+t.displayHeight, maxY)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		t.offsetY = max(t.offsetY-t.displayHeight, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	return nil
}

// Draw displays all the tiles with their coordinates
func (t *TilesetViewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Tileset: %s", t.filename), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Size: %dx%d cells", t.tileset.Width, t.tileset.Height), 10, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Viewing offset: %d,%d", t.offsetX, t.offsetY), 10, 50)

	for y := 0; y < t.displayHeight; y++ {
		for x := 0; x < t.displayWidth; x++ {
			tileX := x + t.offsetX
			tileY := y + t.offsetY
			if tileX >= t.tileset.Width || tileY >= t.tileset.Height {
				continue
			}

			screenX := x * t.tileSize
			screenY := y*t.tileSize + 80 // below the header text

			vector.DrawFilledRect(screen, float32(screenX), float32(screenY), float32(t.tileSize), float32(t.tileSize), color.RGBA{60, 60, 60, 255}, false)
			t.tileset.DrawTileByID(screen, screens.TileID{X: tileX, Y: tileY}, float64(screenX), float64(screenY), float64(t.tileSize), nil)

			// row,col as written in a level's tileTypes
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d,%d", tileY, tileX), screenX+2, screenY+t.tileSize-12)
		}
	}

	ebitenutil.DebugPrintAt(screen, "ESC: quit | Arrow keys: navigate | Page Up/Down: fast navigation", 10, t.screenHeight-20)
}

// Layout implements ebiten.Game's Layout.
func (t *TilesetViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return t.screenWidth, t.screenHeight
}
