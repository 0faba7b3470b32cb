// Package session assembles a playable world: level, entities, systems and the
// fixed-timestep loop. The window, terminal and headless front ends all drive
// a Session.
package session

import (
	"math/rand"
	"time"

	"github.com/rotisserie/eris"

	"ebiten-platformer/components"
	"ebiten-platformer/config"
	"ebiten-platformer/data"
	"ebiten-platformer/ecs"
	"ebiten-platformer/gameloop"
	"ebiten-platformer/generation"
	"ebiten-platformer/geom"
	"ebiten-platformer/logging"
	"ebiten-platformer/remote"
	"ebiten-platformer/spawners"
	"ebiten-platformer/systems"
	"ebiten-platformer/tilemap"
)

const maxMessages = 50

// Options configure New. Zero values fall back to sensible defaults.
type Options struct {
	Config config.Config
	Input  systems.Input
	Clock  gameloop.Clock
	Logger logging.Logger

	// Level overrides both the level asset and generation
	Level *data.Level

	// View size in world units, defaults to the logical screen size
	ViewWidth  float64
	ViewHeight float64

	// Loot is the number of pickups scattered over generated levels. Negative disables.
	Loot int

	// Commands is drained every frame. Sessions that replace each other can
	// share one queue so a single reader keeps feeding whichever is current.
	Commands *remote.Queue
}

// Session is one running game
type Session struct {
	Config   config.Config
	World    *ecs.World
	Loop     *gameloop.Loop
	Entities *spawners.EntitySpawner
	Commands *remote.Queue

	Player *ecs.Entity
	Camera *ecs.Entity

	maps     *systems.MapSystem
	movement *systems.MovementSystem
	death    *systems.DeathSystem
	messages *systems.MessageSystem
	render   *systems.RenderSystem
	applier  *remote.Applier
	logger   logging.Logger
}

// New builds a session from opts
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid config")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	input := opts.Input
	if input == nil {
		input = &systems.StaticInput{}
	}
	viewW, viewH := opts.ViewWidth, opts.ViewHeight
	if viewW <= 0 || viewH <= 0 {
		w, h := config.GetScreenDimensions()
		viewW, viewH = float64(w), float64(h)
	}

	blueprints := data.NewBlueprintManager(logger)
	if cfg.Assets.Blueprints != "" {
		if err := blueprints.LoadFromDirectory(cfg.Assets.Blueprints); err != nil {
			return nil, err
		}
	}

	level, generated, err := loadLevel(cfg, opts.Level)
	if err != nil {
		return nil, err
	}
	tiles, err := level.TileMap()
	if err != nil {
		return nil, err
	}

	commands := opts.Commands
	if commands == nil {
		commands = remote.NewQueue()
	}

	world := ecs.NewWorld(components.NewRegistry(), logger)
	s := &Session{
		Config:   cfg,
		World:    world,
		Entities: spawners.NewEntitySpawner(world, blueprints),
		Commands: commands,
		maps:     systems.NewMapSystem(tiles),
		movement: systems.NewMovementSystem(input),
		death:    systems.NewDeathSystem(),
		messages: systems.NewMessageSystem(systems.NewMessageLog(maxMessages)),
		render:   systems.NewRenderSystem(tiles, viewW, viewH),
		logger:   logger,
	}
	s.applier = remote.NewApplier(world, s.maps, s.Entities)

	// update order matters: input, steering, physics, then the reactions to where bodies ended up
	world.AddSystem(s.maps)
	world.AddSystem(s.movement)
	world.AddSystem(systems.NewAISystem(tiles))
	world.AddSystem(systems.NewPhysicsSystem(tiles, cfg.Physics))
	world.AddSystem(systems.NewCombatSystem())
	world.AddSystem(s.death)
	world.AddSystem(systems.NewProjectileSystem())
	world.AddSystem(systems.NewPickupSystem())
	world.AddSystem(systems.NewCameraSystem(tiles))
	world.AddSystem(s.messages)
	world.AddSystem(systems.NewAnimationSystem())
	world.AddSystem(s.render)

	if err := s.populate(level, generated, opts.Loot, viewW, viewH); err != nil {
		return nil, err
	}

	s.Loop, err = gameloop.New(gameloop.Settings{
		Step:             cfg.Simulation.Step(),
		MaxStepsPerFrame: cfg.Simulation.MaxStepsPerFrame,
	}, opts.Clock, world, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("session started",
		"level", level.Name,
		"rows", tiles.Rows(),
		"cols", tiles.Cols(),
		"entities", world.EntityCount())
	return s, nil
}

// loadLevel picks the level: an explicit one, the configured asset, or a generated one
func loadLevel(cfg config.Config, override *data.Level) (*data.Level, bool, error) {
	if override != nil {
		return override, false, nil
	}
	if cfg.Assets.Level != "" {
		level, err := data.LoadLevel(cfg.Assets.Level)
		return level, false, err
	}

	var gen generation.MapGenerator = generation.NewPlatformGenerator(cfg.Generation.Seed)
	def, err := gen.Generate(cfg.Generation.Rows, cfg.Generation.Cols, config.TileSize)
	if err != nil {
		return nil, false, eris.Wrap(err, "failed to generate level")
	}
	return &data.Level{Name: "generated", Map: def}, true, nil
}

// populate spawns the player, its camera and the level's other entities
func (s *Session) populate(level *data.Level, generated bool, loot int, viewW, viewH float64) error {
	var err error
	s.Player, err = s.Entities.CreatePlayer(s.maps.TileMap().Boundary().Center())
	if err != nil {
		return err
	}
	if spawn, ok := level.PlayerSpawn(); ok {
		ecs.MustGet[*components.Position](s.Player).Teleport(geom.V(spawn.X, spawn.Y))
	} else {
		s.maps.RepositionPlayer()
	}

	s.Camera, err = s.Entities.CreateCamera(s.Player, viewW, viewH)
	if err != nil {
		return err
	}

	others := make([]data.Spawn, 0, len(level.Spawns))
	for _, spawn := range level.Spawns {
		if spawn.Blueprint != data.BlueprintPlayer {
			others = append(others, spawn)
		}
	}
	if _, err := s.Entities.SpawnLevel(others); err != nil {
		return err
	}

	if !generated || loot < 0 {
		return nil
	}
	if loot == 0 {
		loot = s.maps.TileMap().Cols() / 4
	}
	rng := rand.New(rand.NewSource(s.Config.Generation.Seed))
	items := spawners.NewItemSpawner(s.Entities, rng)
	p := ecs.MustGet[*components.Position](s.Player)
	_, spawnCol := s.maps.TileMap().CellAt(p.X, p.Y)
	items.KeepClear(spawnCol)
	_, err = items.Scatter(s.maps.TileMap(), spawners.NewLootTable(spawners.DefaultLoot), loot)
	return err
}

// Frame applies pending remote commands, then runs one display frame of the loop
func (s *Session) Frame() gameloop.FrameResult {
	s.Commands.Drain(s.applier, s.logger)
	return s.Loop.Frame()
}

// Step runs n fixed simulation steps regardless of wall time, then renders once
func (s *Session) Step(n int) {
	s.Commands.Drain(s.applier, s.logger)
	step := s.Loop.Settings().Step
	for n > 0 {
		batch := min(n, s.Loop.Settings().MaxStepsPerFrame)
		s.Loop.Advance(time.Duration(batch) * step)
		n -= batch
	}
}

// Pause stops the simulation. Rendering continues.
func (s *Session) Pause() { s.Loop.Pause() }

// Resume restarts the simulation without a catch-up burst
func (s *Session) Resume() { s.Loop.Resume() }

// Paused reports whether the simulation is paused
func (s *Session) Paused() bool { return s.Loop.Paused() }

// GameOver reports whether the player has died
func (s *Session) GameOver() bool { return s.death.GameOver() }

// Scene returns the last rendered scene
func (s *Session) Scene() *systems.Scene { return s.render.Scene() }

// Messages returns the in-game message log
func (s *Session) Messages() *systems.MessageLog { return s.messages.Log() }

// TileMap returns the active tile map
func (s *Session) TileMap() *tilemap.TileMap { return s.maps.TileMap() }

// SetTileMap replaces the level map in every system that reads it
func (s *Session) SetTileMap(tiles *tilemap.TileMap) {
	s.maps.SetTileMap(tiles)
	s.maps.RepositionPlayer()
}

// SetInput replaces the player's input source
func (s *Session) SetInput(input systems.Input) { s.movement.SetInput(input) }

// Apply executes a remote command immediately. It must be called from the
// goroutine that drives the session.
func (s *Session) Apply(cmd remote.Command) (*ecs.Entity, error) {
	return s.applier.Apply(cmd)
}

// Status summarizes the player for HUDs
type Status struct {
	Health    int
	MaxHealth int
	Score     int
}

// Status reads the player's health and score
func (s *Session) Status() Status {
	var st Status
	if h, ok := ecs.Get[*components.Health](s.Player); ok {
		st.Health, st.MaxHealth = h.Current, h.Max
	}
	if c, ok := ecs.Get[*components.Collector](s.Player); ok {
		st.Score = c.Score
	}
	return st
}
