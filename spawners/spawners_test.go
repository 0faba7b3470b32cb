package spawners

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-platformer/components"
	"ebiten-platformer/data"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

func newSpawner() (*EntitySpawner, *ecs.World) {
	w := ecs.NewWorld(components.NewRegistry(), nil)
	return NewEntitySpawner(w, data.NewBlueprintManager(nil)), w
}

func TestSpawnAtTeleports(t *testing.T) {
	s, _ := newSpawner()

	coin, err := s.SpawnAt(data.BlueprintCoin, geom.V(30, 40))
	require.NoError(t, err)
	p := ecs.MustGet[*components.Position](coin)
	assert.Equal(t, geom.V(30, 40), p.Vec())
	assert.Equal(t, geom.V(30, 40), p.Previous(), "no interpolation from the origin")

	_, err = s.SpawnAt("dragon", geom.Vec2{})
	assert.Error(t, err)
}

func TestCreateCameraTargetsPlayer(t *testing.T) {
	s, w := newSpawner()
	player, err := s.CreatePlayer(geom.V(200, 100))
	require.NoError(t, err)

	cam, err := s.CreateCamera(player, 160, 80)
	require.NoError(t, err)
	c := ecs.MustGet[*components.Camera](cam)
	assert.Equal(t, player.ID, c.Target)
	assert.Equal(t, 120.0, c.X)
	assert.Equal(t, 60.0, c.Y)
	assert.Len(t, w.GetEntitiesOfType(data.BlueprintCamera), 1)
}

func TestSpawnLevelStopsAtUnknownBlueprint(t *testing.T) {
	s, w := newSpawner()
	spawned, err := s.SpawnLevel([]data.Spawn{
		{Blueprint: data.BlueprintCoin, X: 1, Y: 1},
		{Blueprint: data.BlueprintBall, X: 2, Y: 2},
		{Blueprint: "dragon"},
		{Blueprint: data.BlueprintCoin},
	})
	require.Error(t, err)
	assert.Len(t, spawned, 2)
	assert.Equal(t, 2, w.EntityCount())
}

func TestLootTableRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	_, ok := NewLootTable(nil).Roll(rng)
	assert.False(t, ok)
	_, ok = NewLootTable([]LootTableEntry{{Blueprint: "a", Weight: 0}, {Blueprint: "b", Weight: -2}}).Roll(rng)
	assert.False(t, ok)

	table := NewLootTable([]LootTableEntry{{Blueprint: "never", Weight: 0}, {Blueprint: "common", Weight: 9}, {Blueprint: "rare", Weight: 1}})
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		id, ok := table.Roll(rng)
		require.True(t, ok)
		counts[id]++
	}
	assert.Zero(t, counts["never"])
	assert.Greater(t, counts["common"], counts["rare"])
	assert.Positive(t, counts["rare"])
}

func TestScatterPlacesItemsOnSurfaces(t *testing.T) {
	// 3x6 grid with a solid bottom row: every top-middle tile is a surface
	tiles, err := tilemap.New(tilemap.Definition{
		Rows:      3,
		Cols:      6,
		TileSize:  10,
		TileTypes: map[string]tilemap.TileType{"1": {Solid: true}},
		Tiles:     []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
	})
	require.NoError(t, err)

	s, _ := newSpawner()
	items := NewItemSpawner(s, rand.New(rand.NewSource(1)))
	table := NewLootTable([]LootTableEntry{{Blueprint: data.BlueprintCoin, Weight: 1}})

	spawned, err := items.Scatter(tiles, table, 4)
	require.NoError(t, err)
	require.Len(t, spawned, 4)

	cols := map[float64]bool{}
	for _, e := range spawned {
		p := ecs.MustGet[*components.Position](e).Vec()
		assert.Equal(t, 15.0, p.Y, "center of row 1")
		cols[p.X] = true
	}
	assert.Len(t, cols, 4, "distinct tiles")

	spawned, err = items.Scatter(tiles, table, 50)
	require.NoError(t, err)
	assert.Len(t, spawned, 6, "capped by surface count")
}

func TestScatterUsesEachColumnOnceAndKeepsSpawnClear(t *testing.T) {
	// two tiers: the bottom row and a ledge on row 1 in every column
	tiles, err := tilemap.New(tilemap.Definition{
		Rows:      4,
		Cols:      5,
		TileSize:  10,
		TileTypes: map[string]tilemap.TileType{"1": {Solid: true}},
		Tiles: []int{
			0, 0, 0, 0, 0,
			1, 1, 1, 1, 1,
			0, 0, 0, 0, 0,
			1, 1, 1, 1, 1,
		},
	})
	require.NoError(t, err)
	require.Len(t, tiles.Surfaces(), 10)

	s, _ := newSpawner()
	items := NewItemSpawner(s, rand.New(rand.NewSource(3)))
	items.KeepClear(0)
	table := NewLootTable([]LootTableEntry{{Blueprint: data.BlueprintCoin, Weight: 1}})

	spawned, err := items.Scatter(tiles, table, 50)
	require.NoError(t, err)
	require.Len(t, spawned, 4, "one per column, column 0 excluded")

	cols := map[int]bool{}
	for _, e := range spawned {
		row, col := tiles.CellAt(ecs.MustGet[*components.Position](e).X, ecs.MustGet[*components.Position](e).Y)
		assert.Contains(t, []int{0, 2}, row)
		assert.NotZero(t, col)
		cols[col] = true
	}
	assert.Len(t, cols, 4)
}
