package tilemap

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"

	"ebiten-platformer/geom"
)

// TileType describes one entry of the tile palette: its atlas cell and collision flag
type TileType struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Solid bool `json:"solid"`
}

// Definition is the serialized form of a tile map. Tiles holds tile type ids, row-major.
type Definition struct {
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	TileSize  int                 `json:"tileSize"`
	TileTypes map[string]TileType `json:"tileTypes"`
	Tiles     []int               `json:"tiles"`
}

// Terrain is render/editor data carried by a tile. Physics ignores it.
type Terrain struct {
	TypeID   int
	AtlasRow int
	AtlasCol int
}

// Tile is one cell of the grid
type Tile struct {
	Row      int
	Col      int
	Position geom.Vec2 // top-left corner in world units
	Solid    bool
	Terrain  Terrain
}

// Bounds returns the world-space box covered by the tile
func (t *Tile) Bounds(size float64) geom.Box {
	return geom.Box{Min: t.Position, Max: geom.V(t.Position.X+size, t.Position.Y+size)}
}

// TileMap is a static grid of fixed-size tiles
type TileMap struct {
	rows     int
	cols     int
	tileSize int
	types    map[int]TileType
	tiles    [][]Tile
}

// New builds a tile map from its definition
func New(def Definition) (*TileMap, error) {
	if def.Rows <= 0 || def.Cols <= 0 {
		return nil, eris.Errorf("invalid grid size %dx%d", def.Rows, def.Cols)
	}
	if def.TileSize <= 0 {
		return nil, eris.Errorf("invalid tile size %d", def.TileSize)
	}
	if len(def.Tiles) != def.Rows*def.Cols {
		return nil, eris.Errorf("expected %d tiles, got %d", def.Rows*def.Cols, len(def.Tiles))
	}

	types := make(map[int]TileType, len(def.TileTypes))
	for key, tt := range def.TileTypes {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid tile type id %q", key)
		}
		types[id] = tt
	}

	m := &TileMap{
		rows:     def.Rows,
		cols:     def.Cols,
		tileSize: def.TileSize,
		types:    types,
		tiles:    make([][]Tile, def.Rows),
	}

	for row := 0; row < def.Rows; row++ {
		m.tiles[row] = make([]Tile, def.Cols)
		for col := 0; col < def.Cols; col++ {
			tile := &m.tiles[row][col]
			tile.Row, tile.Col = row, col
			tile.Position = geom.V(float64(col*def.TileSize), float64(row*def.TileSize))
			if err := m.applyType(tile, def.Tiles[row*def.Cols+col]); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Empty builds a map of the given size where no tile is solid
func Empty(rows, cols, tileSize int) (*TileMap, error) {
	return New(Definition{
		Rows:      rows,
		Cols:      cols,
		TileSize:  tileSize,
		TileTypes: map[string]TileType{"0": {}},
		Tiles:     make([]int, rows*cols),
	})
}

// applyType sets the tile's terrain and collision from a palette id. Id 0 without a
// palette entry is the empty tile.
func (m *TileMap) applyType(tile *Tile, id int) error {
	tt, exists := m.types[id]
	if !exists && id != 0 {
		return eris.Errorf("unknown tile type %d at row %d, col %d", id, tile.Row, tile.Col)
	}
	tile.Solid = tt.Solid
	tile.Terrain = Terrain{TypeID: id, AtlasRow: tt.Row, AtlasCol: tt.Col}
	return nil
}

func (m *TileMap) Rows() int     { return m.rows }
func (m *TileMap) Cols() int     { return m.cols }
func (m *TileMap) TileSize() int { return m.tileSize }

// Width returns the grid extent in world units
func (m *TileMap) Width() float64 {
	return float64(m.cols * m.tileSize)
}

// Height returns the grid extent in world units
func (m *TileMap) Height() float64 {
	return float64(m.rows * m.tileSize)
}

// Boundary returns the grid extent as a box anchored at the origin
func (m *TileMap) Boundary() geom.Box {
	return geom.Box{Min: geom.V(0, 0), Max: geom.V(m.Width(), m.Height())}
}

// InBounds reports whether (row, col) addresses a tile
func (m *TileMap) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Tile returns the tile at (row, col), or false when out of range
func (m *TileMap) Tile(row, col int) (*Tile, bool) {
	if !m.InBounds(row, col) {
		return nil, false
	}
	return &m.tiles[row][col], true
}

// MustTile returns the tile at (row, col) and panics on an index outside the grid
func (m *TileMap) MustTile(row, col int) *Tile {
	tile, ok := m.Tile(row, col)
	if !ok {
		panic(eris.Errorf("tile index (%d, %d) outside %dx%d grid", row, col, m.rows, m.cols))
	}
	return tile
}

// CellAt converts world coordinates to a (row, col) index, which may be out of range
func (m *TileMap) CellAt(x, y float64) (row, col int) {
	size := float64(m.tileSize)
	return int(math.Floor(y / size)), int(math.Floor(x / size))
}

// GetTileAtCoords returns the tile containing the world point (x, y), or false when outside the grid
func (m *TileMap) GetTileAtCoords(x, y float64) (*Tile, bool) {
	row, col := m.CellAt(x, y)
	return m.Tile(row, col)
}

// IsSolidAt reports whether the world point (x, y) lies on a solid tile
func (m *TileMap) IsSolidAt(x, y float64) bool {
	tile, ok := m.GetTileAtCoords(x, y)
	return ok && tile.Solid
}

// PlaceTile changes the type of the tile at (row, col)
func (m *TileMap) PlaceTile(row, col, typeID int) error {
	tile, ok := m.Tile(row, col)
	if !ok {
		return eris.Errorf("tile index (%d, %d) outside %dx%d grid", row, col, m.rows, m.cols)
	}
	return m.applyType(tile, typeID)
}

// SetSolid overrides the collision flag of the tile at (row, col)
func (m *TileMap) SetSolid(row, col int, solid bool) error {
	tile, ok := m.Tile(row, col)
	if !ok {
		return eris.Errorf("tile index (%d, %d) outside %dx%d grid", row, col, m.rows, m.cols)
	}
	tile.Solid = solid
	return nil
}

// Definition exports the map back to its serialized form. Tiles whose
// collision was overridden with SetSolid are exported with an extra palette
// entry that shares the atlas cell of their type but carries the new flag.
func (m *TileMap) Definition() Definition {
	def := Definition{
		Rows:      m.rows,
		Cols:      m.cols,
		TileSize:  m.tileSize,
		TileTypes: make(map[string]TileType, len(m.types)),
		Tiles:     make([]int, 0, m.rows*m.cols),
	}
	next := 0
	for id, tt := range m.types {
		def.TileTypes[strconv.Itoa(id)] = tt
		next = max(next, id+1)
	}

	// type id -> id of its variant with the collision flag flipped
	flipped := make(map[int]int)
	for row := range m.tiles {
		for col := range m.tiles[row] {
			tile := &m.tiles[row][col]
			id := tile.Terrain.TypeID
			if tt := m.types[id]; tile.Solid != tt.Solid {
				variant, ok := flipped[id]
				if !ok {
					variant, next = next, next+1
					flipped[id] = variant
					def.TileTypes[strconv.Itoa(variant)] = TileType{Row: tt.Row, Col: tt.Col, Solid: tile.Solid}
				}
				id = variant
			}
			def.Tiles = append(def.Tiles, id)
		}
	}
	return def
}

// FloodFill returns the 4-connected region of tiles reachable from (row, col)
// for which pred holds, in breadth-first order. The start tile must satisfy pred.
func (m *TileMap) FloodFill(row, col int, pred func(*Tile) bool) []*Tile {
	start, ok := m.Tile(row, col)
	if !ok || !pred(start) {
		return nil
	}

	visited := make(map[[2]int]bool)
	visited[[2]int{row, col}] = true
	queue := []*Tile{start}
	region := make([]*Tile, 0, 16)

	neighbours := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for len(queue) > 0 {
		tile := queue[0]
		queue = queue[1:]
		region = append(region, tile)

		for _, d := range neighbours {
			r, c := tile.Row+d[0], tile.Col+d[1]
			key := [2]int{r, c}
			if visited[key] {
				continue
			}
			next, ok := m.Tile(r, c)
			if !ok {
				continue
			}
			visited[key] = true
			if pred(next) {
				queue = append(queue, next)
			}
		}
	}

	return region
}

// Surfaces returns every empty tile resting on a solid one, column by column
// from the left and top to bottom within a column.
func (m *TileMap) Surfaces() []*Tile {
	var out []*Tile
	for col := 0; col < m.cols; col++ {
		for row := 0; row < m.rows-1; row++ {
			if !m.tiles[row][col].Solid && m.tiles[row+1][col].Solid {
				out = append(out, &m.tiles[row][col])
			}
		}
	}
	return out
}
