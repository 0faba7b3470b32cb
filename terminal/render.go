// Package terminal is a text front end: it draws sessions on a tcell screen
// and turns key presses into player intents.
package terminal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"ebiten-platformer/session"
	"ebiten-platformer/systems"
	"ebiten-platformer/tilemap"
)

// HUD rows reserved above and below the playfield
const (
	hudTop    = 1
	hudBottom = 2
)

var (
	hudStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	solidStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 110, 80))
	decorStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Renderer maps world units to character cells
type Renderer struct {
	CellWidth  float64 // world units per column
	CellHeight float64 // world units per row
}

// NewRenderer creates a renderer with cells of the given world size
func NewRenderer(cellWidth, cellHeight float64) *Renderer {
	return &Renderer{CellWidth: cellWidth, CellHeight: cellHeight}
}

// ViewSize returns the world size of the playfield on a screen of cols x rows cells
func (r *Renderer) ViewSize(cols, rows int) (float64, float64) {
	rows = max(rows-hudTop-hudBottom, 1)
	return float64(cols) * r.CellWidth, float64(rows) * r.CellHeight
}

// Draw paints the scene, the player status and the latest message
func (r *Renderer) Draw(scr tcell.Screen, scene *systems.Scene, status session.Status, log *systems.MessageLog) {
	scr.Clear()
	sw, sh := scr.Size()
	rows := max(sh-hudTop-hudBottom, 0)

	r.drawTiles(scr, scene, sw, rows)
	for _, sp := range scene.Sprites {
		c := sp.Box.Center()
		col := int(math.Floor(c.X / r.CellWidth))
		row := int(math.Floor(c.Y / r.CellHeight))
		if col < 0 || col+runewidth.RuneWidth(sp.Glyph) > sw || row < 0 || row >= rows {
			continue
		}
		scr.SetContent(col, hudTop+row, sp.Glyph, nil, tcell.StyleDefault.Foreground(rgb(sp.Color)))
	}

	putText(scr, 0, 0, fmt.Sprintf("HP %d/%d  Score %d", status.Health, status.MaxHealth, status.Score), hudStyle)
	if log != nil {
		if recent := log.RecentMessages(1); len(recent) > 0 {
			putText(scr, 0, sh-hudBottom, recent[0].Line(), tcell.StyleDefault.Foreground(rgb(recent[0].Color())))
		}
	}
	putText(scr, 0, sh-1, "arrows/hjkl move  space jump  x fire  p pause  q quit", hudStyle)
}

// drawTiles samples the tile under the center of every playfield cell
func (r *Renderer) drawTiles(scr tcell.Screen, scene *systems.Scene, cols, rows int) {
	if scene.TileSize <= 0 || len(scene.Tiles) == 0 {
		return
	}
	size := float64(scene.TileSize)
	index := make(map[[2]int]*tilemap.Tile, len(scene.Tiles))
	for _, t := range scene.Tiles {
		index[[2]int{t.Row, t.Col}] = t
	}

	for row := 0; row < rows; row++ {
		wy := scene.Camera.Y + (float64(row)+0.5)*r.CellHeight
		for col := 0; col < cols; col++ {
			wx := scene.Camera.X + (float64(col)+0.5)*r.CellWidth
			tile, ok := index[[2]int{int(math.Floor(wy / size)), int(math.Floor(wx / size))}]
			switch {
			case !ok:
			case tile.Solid:
				scr.SetContent(col, hudTop+row, '#', nil, solidStyle)
			case tile.Terrain.TypeID != 0:
				scr.SetContent(col, hudTop+row, '"', nil, decorStyle)
			}
		}
	}
}

// putText writes a string starting at (x, y), clipped at the right edge.
// Wide runes take two columns, zero-width ones are dropped.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += w
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
