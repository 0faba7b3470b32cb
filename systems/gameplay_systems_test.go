package systems

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

func newEntity(t *testing.T, w *ecs.World, entityType string, comps ...ecs.Component) *ecs.Entity {
	t.Helper()
	e := ecs.NewEntity(entityType)
	for _, c := range comps {
		e.AddComponent(c)
	}
	require.NoError(t, w.AddEntity(e))
	return e
}

func TestProjectileExpires(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewProjectileSystem())
	shot := newEntity(t, w, "projectile", components.NewPosition(0, 0), components.NewProjectile(0.1, 1, ecs.EntityID{}))

	run(w, 5)
	assert.False(t, shot.Removed())
	run(w, 2)
	assert.True(t, shot.Removed())
	assert.Zero(t, w.EntityCount())
}

func TestProjectileRemovedOnTileHit(t *testing.T) {
	w, _ := newPhysicsWorld(newMap(t, 8, 10, 20, nil, []int{8}))
	w.AddSystem(NewProjectileSystem())

	rb := components.NewRigidBody()
	rb.Velocity = geom.V(300, 0)
	rb.ClampToMap = false
	shot := newEntity(t, w, "projectile",
		components.NewPosition(100, 50), rb,
		components.NewBoundingBox(4, 4),
		components.NewProjectile(10, 1, ecs.EntityID{}))

	run(w, 30)
	assert.True(t, shot.Removed(), "removed long before its lifetime")
}

func TestProjectileSystemUnsubscribesOnRemoval(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	projectiles := NewProjectileSystem()
	w.AddSystem(projectiles)
	proj := components.NewProjectile(10, 1, ecs.EntityID{})
	shot := newEntity(t, w, "projectile", components.NewPosition(0, 0), proj)

	w.RemoveSystem(projectiles)
	w.EmitEvent(TileCollisionEvent{Entity: shot, Axis: AxisX})
	assert.False(t, proj.Expired())
}

func TestCombatDamagesTargetsButNotOwner(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewCombatSystem())
	w.AddSystem(NewDeathSystem())
	w.AddSystem(NewProjectileSystem())

	shooterHealth := components.NewHealth(10)
	shooter := newEntity(t, w, "player", &components.Player{}, shooterHealth,
		components.NewPosition(50, 50), components.NewBoundingBox(16, 16))
	enemy := newEntity(t, w, "enemy", components.NewHealth(1),
		components.NewPosition(54, 50), components.NewBoundingBox(16, 16))
	shot := newEntity(t, w, "projectile", components.NewProjectile(1, 3, shooter.ID),
		components.NewPosition(52, 50), components.NewBoundingBox(4, 4))

	var damage []DamageEvent
	var deaths []DeathEvent
	w.GetEventManager().Subscribe(EventDamage, func(ev ecs.Event) { damage = append(damage, ev.(DamageEvent)) })
	w.GetEventManager().Subscribe(EventDeath, func(ev ecs.Event) { deaths = append(deaths, ev.(DeathEvent)) })

	w.Update(step)

	assert.Equal(t, 10, shooterHealth.Current)
	require.Len(t, damage, 1)
	assert.Equal(t, enemy, damage[0].Target)
	assert.Equal(t, 1, damage[0].Amount, "only the remaining health is reported")
	require.Len(t, deaths, 1)
	assert.True(t, enemy.Removed())
	assert.True(t, shot.Removed())
}

func TestHazardHurtsPlayersWithCooldown(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewCombatSystem())

	health := components.NewHealth(100)
	newEntity(t, w, "player", &components.Player{}, health,
		components.NewPosition(50, 50), components.NewBoundingBox(12, 12))
	enemyHealth := components.NewHealth(3)
	newEntity(t, w, "enemy", enemyHealth, &components.Hazard{Damage: 10, Cooldown: 0.5},
		components.NewPosition(56, 50), components.NewBoundingBox(12, 12))

	hits := 0
	w.GetEventManager().Subscribe(EventDamage, func(ecs.Event) { hits++ })

	run(w, 1)
	assert.Equal(t, 90, health.Current)
	run(w, 20)
	assert.Equal(t, 90, health.Current, "still cooling down")
	run(w, 20)
	assert.Equal(t, 80, health.Current)
	assert.Equal(t, 2, hits)
	assert.Equal(t, 3, enemyHealth.Current, "hazards do not hurt each other")
}

func TestPlayerDeathEndsGameOnce(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	deaths := NewDeathSystem()
	w.AddSystem(deaths)

	health := components.NewHealth(5)
	p := newEntity(t, w, "player", &components.Player{}, health)
	health.Damage(5)

	over := 0
	w.GetEventManager().Subscribe(EventGameOver, func(ecs.Event) { over++ })
	run(w, 3)

	assert.True(t, deaths.GameOver())
	assert.Equal(t, 1, over)
	assert.False(t, p.Removed())
}

func TestPickupConsumesOverlappingItems(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewPickupSystem())

	wallet := &components.Collector{}
	health := components.NewHealth(100)
	health.Current = 50
	collector := newEntity(t, w, "player", wallet, health,
		components.NewPosition(50, 50), components.NewBoundingBox(16, 16))

	coin := newEntity(t, w, "coin", &components.Coin{Value: 3},
		components.NewPosition(55, 50), components.NewBoundingBox(8, 8))
	pack := &components.HealthPack{Amount: 20, Uses: 2}
	packEntity := newEntity(t, w, "health_pack", pack,
		components.NewPosition(45, 50), components.NewBoundingBox(8, 8))
	far := newEntity(t, w, "coin", &components.Coin{Value: 7},
		components.NewPosition(150, 50), components.NewBoundingBox(8, 8))
	scenery := newEntity(t, w, "rock", components.NewPosition(50, 50), components.NewBoundingBox(8, 8))

	var consumed []ItemConsumedEvent
	w.GetEventManager().Subscribe(EventItemConsumed, func(ev ecs.Event) {
		consumed = append(consumed, ev.(ItemConsumedEvent))
	})

	w.Update(step)
	assert.Equal(t, 3, wallet.Score)
	assert.Equal(t, 70, health.Current)
	assert.True(t, coin.Removed())
	assert.False(t, packEntity.Removed())
	assert.Equal(t, 1, pack.Uses)
	assert.False(t, far.Removed())
	assert.False(t, scenery.Removed(), "entities without a consumable are ignored")
	require.Len(t, consumed, 2)
	for _, ev := range consumed {
		assert.Equal(t, collector, ev.Collector)
	}

	w.Update(step)
	assert.Equal(t, 90, health.Current)
	assert.True(t, packEntity.Removed())
}

func TestFullHealthCollectorLeavesHealthPack(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	messages := NewMessageSystem(NewMessageLog(50))
	w.AddSystem(NewPickupSystem())
	w.AddSystem(messages)

	health := components.NewHealth(100)
	newEntity(t, w, "player", &components.Collector{}, health,
		components.NewPosition(50, 50), components.NewBoundingBox(16, 16))
	pack := &components.HealthPack{Amount: 25, Uses: 1}
	packEntity := newEntity(t, w, "health_pack", pack,
		components.NewPosition(50, 50), components.NewBoundingBox(8, 8))

	events := 0
	w.GetEventManager().Subscribe(EventItemConsumed, func(ecs.Event) { events++ })
	run(w, 60)

	assert.Zero(t, events)
	assert.Empty(t, messages.Log().Messages)
	assert.Equal(t, 1, pack.Uses)
	assert.False(t, packEntity.Removed())

	health.Damage(10)
	run(w, 1)
	assert.Equal(t, 1, events)
	assert.Equal(t, 100, health.Current)
	assert.True(t, packEntity.Removed())
	require.Len(t, messages.Log().Messages, 1)
}

func TestCameraFollowsTargetInsideMap(t *testing.T) {
	tiles := newMap(t, 20, 40, 10, nil, nil)
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewCameraSystem(tiles))

	targetPos := components.NewPosition(10, 10)
	target := newEntity(t, w, "player", targetPos)
	camera := components.NewCamera(target.ID, 100, 50)
	newEntity(t, w, "camera", camera)

	events := 0
	w.GetEventManager().Subscribe(EventCameraUpdate, func(ecs.Event) { events++ })

	tests := []struct {
		target geom.Vec2
		camera geom.Vec2
	}{
		{geom.V(10, 10), geom.V(0, 0)},
		{geom.V(200, 100), geom.V(150, 75)},
		{geom.V(395, 195), geom.V(300, 150)},
	}
	for _, tt := range tests {
		targetPos.Teleport(tt.target)
		w.Update(step)
		assert.Equal(t, tt.camera, geom.V(camera.X, camera.Y), "target %v", tt.target)
	}
	assert.Equal(t, 2, events, "the first position did not move the camera")
}

func TestCameraWithoutTargetStays(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewCameraSystem(nil))
	camera := components.NewCamera(ecs.EntityID{}, 100, 50)
	camera.X = 7
	newEntity(t, w, "camera", camera)

	w.Update(step)
	assert.Equal(t, 7.0, camera.X)
}

func TestAnimationFollowsMotionFlags(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewAnimationSystem())
	move := components.NewMovement()
	anim := components.NewAnimation(4, 2)
	newEntity(t, w, "player", move, anim)

	tests := []struct {
		flags components.MotionFlags
		clip  string
	}{
		{components.MotionFlags{Grounded: true}, components.AnimIdle},
		{components.MotionFlags{Grounded: true, Walking: true}, components.AnimWalk},
		{components.MotionFlags{Jumping: true}, components.AnimJump},
		{components.MotionFlags{Falling: true}, components.AnimFall},
	}
	for _, tt := range tests {
		move.MotionFlags = tt.flags
		w.Render(0)
		assert.Equal(t, tt.clip, anim.State)
	}

	w.Update(step)
	assert.Equal(t, components.AnimFall, anim.State, "simulation steps do not animate")
}

func TestRenderBuildsInterpolatedScene(t *testing.T) {
	tiles := floorMap(t)
	w := ecs.NewWorld(nil, nil)
	render := NewRenderSystem(tiles, 100, 50)
	w.AddSystem(render)

	pos := components.NewPosition(10, 10)
	pos.CachePrevious()
	pos.Set(geom.V(20, 10))
	top := components.NewRenderable('@', color.RGBA{255, 0, 0, 255})
	top.Layer = 2
	player := newEntity(t, w, "player", pos, top, components.NewBoundingBox(4, 4))
	newEntity(t, w, "coin", components.NewPosition(30, 30), components.NewRenderable('$', color.RGBA{}))
	hiddenPos := components.NewPosition(180, 140)
	newEntity(t, w, "coin", hiddenPos, components.NewRenderable('$', color.RGBA{}))

	w.Render(0.5)
	scene := render.Scene()

	require.Len(t, scene.Sprites, 2, "off-view entities are culled")
	assert.Equal(t, "coin", scene.Sprites[0].Type, "lower layers first")
	sprite := scene.Sprites[1]
	assert.Equal(t, player.ID, sprite.Entity)
	assert.Equal(t, geom.V(15, 10), sprite.Box.Center())
	assert.Equal(t, '@', sprite.Glyph)
	assert.False(t, pos.Dirty())
	assert.False(t, hiddenPos.Dirty(), "culled positions are consumed too")

	assert.Equal(t, 20, scene.TileSize)
	assert.Len(t, scene.Tiles, 5*3)
	assert.Equal(t, 0.5, scene.Alpha)
}

func TestRenderAppliesCameraOffset(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	render := NewRenderSystem(floorMap(t), 100, 50)
	w.AddSystem(render)

	camera := components.NewCamera(ecs.EntityID{}, 40, 40)
	camera.X, camera.Y = 60, 20
	newEntity(t, w, "camera", camera)
	newEntity(t, w, "player", components.NewPosition(80, 40), components.NewRenderable('@', color.RGBA{}))
	newEntity(t, w, "coin", components.NewPosition(10, 10), components.NewRenderable('$', color.RGBA{}))

	w.Render(1)
	scene := render.Scene()

	assert.Equal(t, geom.V(40, 40), scene.View)
	assert.Equal(t, geom.V(60, 20), scene.Camera)
	require.Len(t, scene.Sprites, 1)
	assert.Equal(t, geom.V(20, 20), scene.Sprites[0].Box.Center())
	require.Len(t, scene.Tiles, 2*2)
	for _, tile := range scene.Tiles {
		assert.True(t, scene.ViewBox().Overlaps(tile.Bounds(20)))
	}
}

func TestMapSystemPropagatesTileMap(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	maps := NewMapSystem(nil)
	physics := NewPhysicsSystem(nil, testPhysics)
	w.AddSystem(maps)
	w.AddSystem(physics)

	tiles := floorMap(t)
	maps.SetTileMap(tiles)
	assert.Same(t, tiles, physics.TileMap())
	assert.Same(t, tiles, maps.TileMap())
}

func TestMapSystemSpawnPoint(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	maps := NewMapSystem(floorMap(t))
	w.AddSystem(maps)

	assert.Equal(t, geom.V(10, 100-8-1), maps.FindSpawnPoint(16))

	pos := components.NewPosition(150, 10)
	rb := components.NewRigidBody()
	rb.Velocity = geom.V(40, 40)
	newEntity(t, w, "player", &components.Player{}, pos, rb, components.NewBoundingBox(16, 16))

	maps.RepositionPlayer()
	assert.Equal(t, geom.V(10, 91), pos.Vec())
	assert.Equal(t, pos.Vec(), pos.Previous())
	assert.Zero(t, rb.Velocity)
}

func TestMessageSystemLogsEvents(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	messages := NewMessageSystem(NewMessageLog(2))
	w.AddSystem(messages)

	coin := newEntity(t, w, "coin", &components.Coin{Value: 3})
	enemy := newEntity(t, w, "enemy")
	w.EmitEvent(ItemConsumedEvent{Item: coin, Depleted: true})
	w.EmitEvent(DeathEvent{Entity: enemy})
	w.EmitEvent(GameOverEvent{})

	recent := messages.Log().RecentMessages(5)
	require.Len(t, recent, 2, "the log keeps its newest messages")
	assert.Equal(t, "Game over", recent[0].Text)
	assert.Equal(t, MessageTypeAlert, recent[0].Type)
	assert.Equal(t, "enemy was defeated", recent[1].Text)

	w.RemoveSystem(messages)
	w.EmitEvent(ItemConsumedEvent{Item: coin})
	assert.Len(t, messages.Log().Messages, 2)
}

func TestMessageLogCollapsesRepeats(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	messages := NewMessageSystem(NewMessageLog(10))
	w.AddSystem(messages)

	coin := newEntity(t, w, "coin", &components.Coin{Value: 2})
	player := newEntity(t, w, "player", &components.Player{})
	enemy := newEntity(t, w, "enemy")
	for i := 0; i < 3; i++ {
		w.EmitEvent(ItemConsumedEvent{Item: coin, Depleted: true})
	}
	w.EmitEvent(DamageEvent{Target: player, Amount: 10})
	w.EmitEvent(DamageEvent{Target: enemy, Amount: 1})

	log := messages.Log().Messages
	require.Len(t, log, 3)
	assert.Equal(t, "Coin +2 x3", log[0].Line())
	assert.Equal(t, MessageTypeScore, log[0].Type)
	assert.Equal(t, "You take 10 damage", log[1].Line())
	assert.Equal(t, MessageTypeHurt, log[1].Type)
	assert.Equal(t, "enemy takes 1 damage", log[2].Text)
	assert.NotEqual(t, log[1].Color(), log[2].Color())
	assert.Equal(t, messageColors[MessageTypeNormal], Message{Type: MessageType(99)}.Color())
}

func newWalker(t *testing.T, w *ecs.World, x, y float64) (*components.Position, *components.RigidBody) {
	t.Helper()
	pos := components.NewPosition(x, y)
	rb := components.NewRigidBody()
	rb.Gravity = true
	newEntity(t, w, "enemy", pos, rb, components.NewMovement(), components.NewBoundingBox(12, 12))
	return pos, rb
}

func TestPatrolTurnsAtWalls(t *testing.T) {
	tiles := newMap(t, 8, 10, 20, []int{5}, []int{8})
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewAISystem(tiles))
	w.AddSystem(NewPhysicsSystem(tiles, testPhysics))
	pos, rb := newWalker(t, w, 100, 93)

	turned := false
	for i := 0; i < 240 && !turned; i++ {
		w.Update(step)
		turned = rb.Direction.X < 0
	}
	require.True(t, turned)
	assert.LessOrEqual(t, pos.X+6, 160.0)
	assert.Equal(t, PatrolSpeed, rb.Velocity.X)
}

func TestPatrolTurnsAtLedges(t *testing.T) {
	tiles := newMap(t, 8, 10, 20, nil, nil)
	for col := 0; col < 5; col++ {
		require.NoError(t, tiles.SetSolid(5, col, true))
	}
	w := ecs.NewWorld(nil, nil)
	w.AddSystem(NewAISystem(tiles))
	w.AddSystem(NewPhysicsSystem(tiles, testPhysics))
	pos, rb := newWalker(t, w, 50, 93)

	for i := 0; i < 600; i++ {
		w.Update(step)
		require.Less(t, pos.Y, 100.0, "walker never falls off the platform")
	}
	assert.Less(t, pos.X, 100.0)
	assert.NotZero(t, rb.Velocity.X)
}
