package spawners

import (
	"github.com/rotisserie/eris"

	"ebiten-platformer/components"
	"ebiten-platformer/data"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
	"ebiten-platformer/logging"
)

// EntitySpawner creates game entities from blueprints
type EntitySpawner struct {
	world      *ecs.World
	blueprints *data.BlueprintManager
	logger     logging.Logger
}

// NewEntitySpawner creates a new entity spawner
func NewEntitySpawner(world *ecs.World, blueprints *data.BlueprintManager) *EntitySpawner {
	return &EntitySpawner{
		world:      world,
		blueprints: blueprints,
		logger:     world.Logger(),
	}
}

// Blueprints returns the blueprint manager used by the spawner
func (s *EntitySpawner) Blueprints() *data.BlueprintManager {
	return s.blueprints
}

// SpawnAt spawns the blueprint with the given ID centered on pos.
// Blueprints without a Position component are spawned as they are.
func (s *EntitySpawner) SpawnAt(id string, pos geom.Vec2) (*ecs.Entity, error) {
	bp, ok := s.blueprints.Get(id)
	if !ok {
		return nil, eris.Errorf("no blueprint found with id %q", id)
	}

	entity, err := s.world.Spawn(bp)
	if err != nil {
		return nil, err
	}
	if p, ok := ecs.Get[*components.Position](entity); ok {
		p.Teleport(pos)
	}
	return entity, nil
}

// CreatePlayer creates the player entity at the given position
func (s *EntitySpawner) CreatePlayer(pos geom.Vec2) (*ecs.Entity, error) {
	player, err := s.SpawnAt(data.BlueprintPlayer, pos)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create player")
	}
	s.logger.Info("player created", "x", pos.X, "y", pos.Y)
	return player, nil
}

// CreateCamera creates a camera entity that follows the given target entity
func (s *EntitySpawner) CreateCamera(target *ecs.Entity, viewWidth, viewHeight float64) (*ecs.Entity, error) {
	cameraEntity, err := s.SpawnAt(data.BlueprintCamera, geom.Vec2{})
	if err != nil {
		return nil, eris.Wrap(err, "failed to create camera")
	}

	camera := ecs.MustGet[*components.Camera](cameraEntity)
	camera.Target = target.ID
	camera.ViewWidth = viewWidth
	camera.ViewHeight = viewHeight

	// Set initial camera position
	if p, ok := ecs.Get[*components.Position](target); ok {
		camera.X = p.X - viewWidth/2
		camera.Y = p.Y - viewHeight/2
	}
	return cameraEntity, nil
}

// SpawnLevel spawns every entity listed by a level
func (s *EntitySpawner) SpawnLevel(spawns []data.Spawn) ([]*ecs.Entity, error) {
	entities := make([]*ecs.Entity, 0, len(spawns))
	for _, spawn := range spawns {
		e, err := s.SpawnAt(spawn.Blueprint, geom.V(spawn.X, spawn.Y))
		if err != nil {
			return entities, eris.Wrapf(err, "failed to spawn %q at %v,%v", spawn.Blueprint, spawn.X, spawn.Y)
		}
		entities = append(entities, e)
	}
	return entities, nil
}
