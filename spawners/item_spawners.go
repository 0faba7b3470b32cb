package spawners

import (
	"math/rand"

	"ebiten-platformer/data"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/tilemap"
)

// DefaultLoot is the pickup mix scattered over generated levels
var DefaultLoot = []LootTableEntry{
	{Blueprint: data.BlueprintCoin, Weight: 8},
	{Blueprint: data.BlueprintHealthPack, Weight: 1},
	{Blueprint: data.BlueprintEnemy, Weight: 1},
}

// ItemSpawner scatters pickups over the walkable surfaces of a map
type ItemSpawner struct {
	entities *EntitySpawner
	rng      *rand.Rand
	clear    map[int]bool // columns that never get an item
}

// NewItemSpawner creates an item spawner drawing from rng
func NewItemSpawner(entities *EntitySpawner, rng *rand.Rand) *ItemSpawner {
	return &ItemSpawner{entities: entities, rng: rng, clear: make(map[int]bool)}
}

// KeepClear excludes map columns from scattering, e.g. the player's spawn column
func (s *ItemSpawner) KeepClear(cols ...int) {
	for _, col := range cols {
		s.clear[col] = true
	}
}

// Scatter spawns count rolls of table on random surfaces, at most one per
// column. Fewer entities are spawned when the map has fewer free columns.
func (s *ItemSpawner) Scatter(tiles *tilemap.TileMap, table *LootTable, count int) ([]*ecs.Entity, error) {
	surfaces := s.columnSurfaces(tiles)
	s.rng.Shuffle(len(surfaces), func(i, j int) {
		surfaces[i], surfaces[j] = surfaces[j], surfaces[i]
	})
	if count > len(surfaces) {
		count = len(surfaces)
	}

	half := float64(tiles.TileSize()) / 2
	spawned := make([]*ecs.Entity, 0, count)
	for _, tile := range surfaces[:count] {
		id, ok := table.Roll(s.rng)
		if !ok {
			break
		}
		e, err := s.entities.SpawnAt(id, tile.Position.Add(geom.V(half, half)))
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}

// columnSurfaces picks one random surface tile in every column not kept clear
func (s *ItemSpawner) columnSurfaces(tiles *tilemap.TileMap) []*tilemap.Tile {
	var out []*tilemap.Tile
	all := tiles.Surfaces()
	// Surfaces is grouped by column
	for start := 0; start < len(all); {
		end := start
		for end < len(all) && all[end].Col == all[start].Col {
			end++
		}
		if !s.clear[all[start].Col] {
			out = append(out, all[start+s.rng.Intn(end-start)])
		}
		start = end
	}
	return out
}
