package remote

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/spawners"
	"ebiten-platformer/tilemap"
)

// EventTilePlaced is emitted after a command changes a tile
const EventTilePlaced ecs.EventType = "tile_placed"

// TilePlacedEvent reports the tile a command changed
type TilePlacedEvent struct {
	Row, Col int
	Tile     *tilemap.Tile
}

func (e TilePlacedEvent) Type() ecs.EventType {
	return EventTilePlaced
}

// MapSource returns the tile map commands edit
type MapSource interface {
	TileMap() *tilemap.TileMap
}

// Applier executes commands against a world. It must only be used from the
// goroutine that steps the world.
type Applier struct {
	world    *ecs.World
	maps     MapSource
	entities *spawners.EntitySpawner
}

// NewApplier creates an applier for world
func NewApplier(world *ecs.World, maps MapSource, entities *spawners.EntitySpawner) *Applier {
	return &Applier{world: world, maps: maps, entities: entities}
}

// Apply executes one command. A spawn returns the new entity.
func (a *Applier) Apply(cmd Command) (*ecs.Entity, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	switch cmd.Op {
	case OpPlaceTile:
		return nil, a.placeTile(cmd)
	case OpSpawnEntity:
		return a.spawn(cmd)
	case OpDespawnEntity:
		return nil, a.despawn(cmd)
	}
	return nil, eris.Wrapf(ErrUnknownOp, "op %q", cmd.Op)
}

func (a *Applier) placeTile(cmd Command) error {
	tiles := a.maps.TileMap()
	if tiles == nil {
		return eris.New("no tile map loaded")
	}

	if cmd.TileType != nil {
		if err := tiles.PlaceTile(cmd.Row, cmd.Col, *cmd.TileType); err != nil {
			return eris.Wrap(err, "place-tile")
		}
	}
	if cmd.Solid != nil {
		if err := tiles.SetSolid(cmd.Row, cmd.Col, *cmd.Solid); err != nil {
			return eris.Wrap(err, "place-tile")
		}
	}

	tile := tiles.MustTile(cmd.Row, cmd.Col)
	a.world.Logger().Debug("tile placed", "row", cmd.Row, "col", cmd.Col, "solid", tile.Solid)
	a.world.EmitEvent(TilePlacedEvent{Row: cmd.Row, Col: cmd.Col, Tile: tile})
	return nil
}

func (a *Applier) spawn(cmd Command) (*ecs.Entity, error) {
	pos := geom.V(cmd.X, cmd.Y)
	if cmd.Blueprint != "" {
		e, err := a.entities.SpawnAt(cmd.Blueprint, pos)
		return e, eris.Wrap(err, "spawn-entity")
	}

	entityType := cmd.Type
	if entityType == "" {
		entityType = "remote"
	}
	e, err := a.world.Spawn(ecs.Blueprint{Type: entityType, Components: cmd.Components})
	if err != nil {
		return nil, eris.Wrap(err, "spawn-entity")
	}
	if p, ok := ecs.Get[*components.Position](e); ok {
		p.Teleport(pos)
	}
	return e, nil
}

func (a *Applier) despawn(cmd Command) error {
	id, err := uuid.Parse(cmd.Entity)
	if err != nil {
		return eris.Wrapf(err, "despawn-entity: bad id %q", cmd.Entity)
	}
	return eris.Wrap(a.world.RemoveEntityByID(id), "despawn-entity")
}
