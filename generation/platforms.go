package generation

import (
	"math/rand"
	"strconv"

	"github.com/rotisserie/eris"

	"ebiten-platformer/tilemap"
)

// Tile type ids written by the generator
const (
	TileEmpty    = 0
	TileGround   = 1
	TilePlatform = 2
	TileGrass    = 3
)

// Palette is the tile type table of generated levels
var Palette = map[string]tilemap.TileType{
	strconv.Itoa(TileEmpty):    {Row: 0, Col: 0, Solid: false},
	strconv.Itoa(TileGround):   {Row: 1, Col: 0, Solid: true},
	strconv.Itoa(TilePlatform): {Row: 1, Col: 1, Solid: true},
	strconv.Itoa(TileGrass):    {Row: 0, Col: 2, Solid: false},
}

// Generation limits, in tiles
const (
	minRows        = 8
	minCols        = 16
	groundDepth    = 2
	safeZone       = 4 // columns at each end that never get a pit
	platformRise   = 3 // rows between ground and the first platform tier
	platformTiers  = 3
	minPlatformLen = 3
	maxPlatformLen = 7
	maxPitWidth    = 3
)

// PlatformGenerator handles procedural generation of platform levels
type PlatformGenerator struct {
	rng *rand.Rand
}

// NewPlatformGenerator creates a generator with a fixed seed. The same seed
// always produces the same level.
func NewPlatformGenerator(seed int64) *PlatformGenerator {
	return &PlatformGenerator{rng: rand.New(rand.NewSource(seed))}
}

// SetSeed allows setting a specific seed for reproducible levels
func (g *PlatformGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Generate creates a level: solid ground with a few pits, floating platforms in
// tiers a jump apart, and grass decoration on top of the ground.
func (g *PlatformGenerator) Generate(rows, cols, tileSize int) (tilemap.Definition, error) {
	if rows < minRows || cols < minCols {
		return tilemap.Definition{}, eris.Errorf("level must be at least %dx%d tiles, got %dx%d", minRows, minCols, rows, cols)
	}
	if tileSize <= 0 {
		return tilemap.Definition{}, eris.Errorf("invalid tile size %d", tileSize)
	}

	grid := make([][]int, rows)
	for row := range grid {
		grid[row] = make([]int, cols)
	}

	g.carveGround(grid)
	g.placePlatforms(grid)
	g.decorate(grid)

	tiles := make([]int, 0, rows*cols)
	for _, row := range grid {
		tiles = append(tiles, row...)
	}

	palette := make(map[string]tilemap.TileType, len(Palette))
	for k, v := range Palette {
		palette[k] = v
	}

	return tilemap.Definition{
		Rows:      rows,
		Cols:      cols,
		TileSize:  tileSize,
		TileTypes: palette,
		Tiles:     tiles,
	}, nil
}

// carveGround fills the bottom rows and cuts pits outside the safe zones
func (g *PlatformGenerator) carveGround(grid [][]int) {
	rows, cols := len(grid), len(grid[0])
	for row := rows - groundDepth; row < rows; row++ {
		for col := 0; col < cols; col++ {
			grid[row][col] = TileGround
		}
	}

	pits := (cols - 2*safeZone) / 12
	for i := 0; i < pits; i++ {
		width := 2 + g.rng.Intn(maxPitWidth-1)
		start := safeZone + g.rng.Intn(cols-2*safeZone-width)
		for col := start; col < start+width; col++ {
			grid[rows-groundDepth][col] = TileEmpty
		}
	}
}

// placePlatforms lays platform segments on tiers above the ground. A segment
// on a higher tier is only placed above a column covered by the tier below.
func (g *PlatformGenerator) placePlatforms(grid [][]int) {
	rows, cols := len(grid), len(grid[0])
	ground := rows - groundDepth

	for tier := 0; tier < platformTiers; tier++ {
		row := ground - platformRise*(tier+1)
		if row < 1 {
			return
		}

		for col := 1 + g.rng.Intn(4); col < cols-1; {
			length := minPlatformLen + g.rng.Intn(maxPlatformLen-minPlatformLen+1)
			if col+length > cols-1 {
				length = cols - 1 - col
			}
			if length >= minPlatformLen && (tier == 0 || g.supported(grid, row+platformRise, col, length)) {
				for c := col; c < col+length; c++ {
					grid[row][c] = TilePlatform
				}
			}
			col += length + 2 + g.rng.Intn(5)
		}
	}
}

// supported reports whether any column in [col, col+length) has a platform on row
func (g *PlatformGenerator) supported(grid [][]int, row, col, length int) bool {
	for c := col; c < col+length; c++ {
		if grid[row][c] == TilePlatform {
			return true
		}
	}
	return false
}

// decorate puts grass on empty cells directly above ground
func (g *PlatformGenerator) decorate(grid [][]int) {
	row := len(grid) - groundDepth - 1
	for col := range grid[row] {
		if grid[row][col] == TileEmpty && grid[row+1][col] == TileGround && g.rng.Intn(3) == 0 {
			grid[row][col] = TileGrass
		}
	}
}
