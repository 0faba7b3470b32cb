package screens

import (
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"

	"ebiten-platformer/tilemap"
)

// Tileset handles loading and drawing a CP437 spritesheet: 16 cells per row,
// glyph n at column n%16 and row n/16.
type Tileset struct {
	Image    *ebiten.Image
	CellSize int // size of one cell in the source image
	Width    int // Number of tiles horizontally in the tileset
	Height   int // Number of tiles vertically in the tileset
}

// NewTileset loads a tileset from a file
func NewTileset(filename string, cellSize int) (*Tileset, error) {
	if cellSize <= 0 {
		return nil, eris.Errorf("invalid tileset cell size %d", cellSize)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, eris.Wrap(err, "failed to open tileset")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to decode tileset %s", filename)
	}

	ebitenImage := ebiten.NewImageFromImage(img)
	bounds := ebitenImage.Bounds()
	return &Tileset{
		Image:    ebitenImage,
		CellSize: cellSize,
		Width:    bounds.Dx() / cellSize,
		Height:   bounds.Dy() / cellSize,
	}, nil
}

// TileID represents a tile by its position in the tileset
type TileID struct {
	X, Y int
}

// GlyphID returns the cell of a CP437 character
func GlyphID(char rune) TileID {
	index := int(char)
	return TileID{X: index % 16, Y: index / 16}
}

// TerrainID returns the atlas cell of a map tile
func TerrainID(t tilemap.Terrain) TileID {
	return TileID{X: t.AtlasCol, Y: t.AtlasRow}
}

// DrawTileByID draws the cell id scaled to a size x size square with its
// top-left corner at (x, y) in pixels
func (t *Tileset) DrawTileByID(target *ebiten.Image, id TileID, x, y, size float64, clr color.Color) {
	if id.X < 0 || id.X >= t.Width || id.Y < 0 || id.Y >= t.Height {
		if id != GlyphID('?') {
			t.DrawTileByID(target, GlyphID('?'), x, y, size, color.RGBA{255, 0, 255, 255})
		}
		return
	}

	sx, sy := id.X*t.CellSize, id.Y*t.CellSize
	op := &ebiten.DrawImageOptions{}
	scale := size / float64(t.CellSize)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	if clr != nil {
		op.ColorScale.ScaleWithColor(clr)
	}

	rect := image.Rect(sx, sy, sx+t.CellSize, sy+t.CellSize)
	target.DrawImage(t.Image.SubImage(rect).(*ebiten.Image), op)
}

// DrawGlyph draws a single character
func (t *Tileset) DrawGlyph(target *ebiten.Image, char rune, x, y, size float64, clr color.Color) {
	t.DrawTileByID(target, GlyphID(char), x, y, size, clr)
}

// DrawTerrain draws a map tile from its atlas cell
func (t *Tileset) DrawTerrain(target *ebiten.Image, terrain tilemap.Terrain, x, y, size float64) {
	t.DrawTileByID(target, TerrainID(terrain), x, y, size, nil)
}
