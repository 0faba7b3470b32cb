package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-platformer/components"
	"ebiten-platformer/config"
	"ebiten-platformer/data"
	"ebiten-platformer/ecs"
	"ebiten-platformer/gameloop"
	"ebiten-platformer/remote"
	"ebiten-platformer/systems"
	"ebiten-platformer/tilemap"
)

// box level: 6 rows by 20 columns of 16px tiles, floor on row 5
func boxLevel(spawns ...data.Spawn) *data.Level {
	tiles := make([]int, 6*20)
	for col := 0; col < 20; col++ {
		tiles[5*20+col] = 1
	}
	return &data.Level{
		Name: "box",
		Map: tilemap.Definition{
			Rows:      6,
			Cols:      20,
			TileSize:  16,
			TileTypes: map[string]tilemap.TileType{"0": {}, "1": {Row: 1, Solid: true}},
			Tiles:     tiles,
		},
		Spawns: spawns,
	}
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Config.Simulation.MsPerUpdate == 0 {
		opts.Config = config.Default()
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func TestGeneratedSessionSettlesPlayer(t *testing.T) {
	s := newSession(t, Options{Loot: -1})
	s.Step(60)

	p := ecs.MustGet[*components.Position](s.Player)
	// first surface is column 0 above the ground at row 28
	assert.InDelta(t, 8.0, p.X, 1e-9)
	assert.InDelta(t, 28*16-7-0.01, p.Y, 1e-6)
	assert.True(t, ecs.MustGet[*components.PlayerMovement](s.Player).Grounded)
	assert.EqualValues(t, 60, s.Loop.TotalSteps())
	assert.False(t, s.GameOver())
}

func TestGeneratedSessionScattersLoot(t *testing.T) {
	with := newSession(t, Options{})
	without := newSession(t, Options{Loot: -1})

	assert.Equal(t, 2, without.World.EntityCount(), "player and camera")
	assert.Equal(t, 2+80/4, with.World.EntityCount())
}

func TestLevelSpawns(t *testing.T) {
	s := newSession(t, Options{Level: boxLevel(
		data.Spawn{Blueprint: data.BlueprintPlayer, X: 40, Y: 60},
		data.Spawn{Blueprint: data.BlueprintCoin, X: 200, Y: 72},
	)})

	assert.Equal(t, 40.0, ecs.MustGet[*components.Position](s.Player).X)
	assert.Len(t, s.World.GetEntitiesOfType(data.BlueprintPlayer), 1, "the player spawn is not duplicated")
	assert.Len(t, s.World.GetEntitiesOfType(data.BlueprintCoin), 1)
	assert.Equal(t, 3, s.World.EntityCount(), "no loot on authored levels")
}

func TestPlayerWalksAndCollects(t *testing.T) {
	input := &systems.StaticInput{}
	s := newSession(t, Options{
		Input: input,
		Level: boxLevel(
			data.Spawn{Blueprint: data.BlueprintPlayer, X: 40, Y: 72},
			data.Spawn{Blueprint: data.BlueprintCoin, X: 120, Y: 74},
		),
	})
	s.Step(10)

	input.Current = systems.Intent{Right: true}
	s.Step(120)

	assert.Greater(t, ecs.MustGet[*components.Position](s.Player).X, 120.0)
	assert.Equal(t, 1, s.Status().Score)
	assert.Empty(t, s.World.GetEntitiesOfType(data.BlueprintCoin))
	require.NotEmpty(t, s.Messages().RecentMessages(1))
}

func TestSceneFollowsPlayer(t *testing.T) {
	s := newSession(t, Options{Loot: -1, ViewWidth: 160, ViewHeight: 96})
	s.Step(5)

	scene := s.Scene()
	assert.Equal(t, 160.0, scene.View.X)
	assert.Equal(t, 16, scene.TileSize)
	assert.NotEmpty(t, scene.Tiles)
	require.NotEmpty(t, scene.Sprites)
	assert.Equal(t, data.BlueprintPlayer, scene.Sprites[len(scene.Sprites)-1].Type)
	assert.True(t, scene.ViewBox().Overlaps(s.TileMap().Boundary()))
}

func TestRemoteCommandsAreDrainedEachFrame(t *testing.T) {
	clock := gameloop.NewManualClock(time.Unix(0, 0))
	s := newSession(t, Options{Clock: clock, Level: boxLevel()})

	solid := true
	s.Commands.Push(remote.Command{Op: remote.OpPlaceTile, Row: 2, Col: 2, Solid: &solid})
	s.Commands.Push(remote.Command{Op: remote.OpSpawnEntity, Blueprint: data.BlueprintBall, X: 100, Y: 20})

	before := s.World.EntityCount()
	s.Frame()
	assert.True(t, s.TileMap().MustTile(2, 2).Solid)
	assert.Equal(t, before+1, s.World.EntityCount())
	assert.Zero(t, s.Commands.Len())

	clock.Advance(100 * time.Millisecond)
	res := s.Frame()
	assert.Equal(t, 6, res.Steps)
}

func TestSharedQueueFeedsReplacementSession(t *testing.T) {
	queue := remote.NewQueue()
	first := newSession(t, Options{Level: boxLevel(), Commands: queue})
	second := newSession(t, Options{Level: boxLevel(), Commands: queue})
	require.Same(t, first.Commands, second.Commands)

	solid := true
	queue.Push(remote.Command{Op: remote.OpPlaceTile, Row: 1, Col: 3, Solid: &solid})
	second.Frame()

	assert.True(t, second.TileMap().MustTile(1, 3).Solid)
	assert.False(t, first.TileMap().MustTile(1, 3).Solid)
	assert.Zero(t, queue.Len())
}

func TestPauseFreezesSimulation(t *testing.T) {
	clock := gameloop.NewManualClock(time.Unix(0, 0))
	s := newSession(t, Options{Clock: clock, Loot: -1})
	s.Frame()

	s.Pause()
	clock.Advance(time.Second)
	assert.Zero(t, s.Frame().Steps)
	s.Resume()
	assert.False(t, s.Paused())
	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 3, s.Frame().Steps)
}

func TestSetTileMapRepositionsPlayer(t *testing.T) {
	s := newSession(t, Options{Level: boxLevel(data.Spawn{Blueprint: data.BlueprintPlayer, X: 40, Y: 72})})

	next, err := boxLevel().TileMap()
	require.NoError(t, err)
	require.NoError(t, next.SetSolid(5, 0, false))
	s.SetTileMap(next)

	assert.Same(t, next, s.TileMap())
	p := ecs.MustGet[*components.Position](s.Player)
	assert.Equal(t, 24.0, p.X, "first surface is now column 1")
}

func TestNewRejectsBadInputs(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.MsPerUpdate = 0
	_, err := New(Options{Config: cfg})
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Assets.Level = "/does/not/exist.json"
	_, err = New(Options{Config: cfg})
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Generation.Rows = 6
	_, err = New(Options{Config: cfg})
	assert.Error(t, err, "valid config but too small to generate")
}

func TestShippedDemoLevelLoads(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Level = "../assets/levels/demo.json"
	cfg.Assets.Blueprints = "../assets/blueprints"
	s := newSession(t, Options{Config: cfg})

	assert.Len(t, s.World.GetEntitiesOfType("ball"), 1, "bouncer blueprint spawns as a ball")
	assert.Len(t, s.World.GetEntitiesOfType(data.BlueprintCoin), 3)
	assert.Equal(t, 24.0, ecs.MustGet[*components.Position](s.Player).X)

	s.Step(120)
	assert.False(t, s.GameOver())
	assert.True(t, ecs.MustGet[*components.PlayerMovement](s.Player).Grounded)
}
