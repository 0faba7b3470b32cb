package ecs_test

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-platformer/ecs"
)

const (
	posID ecs.ComponentID = iota + 1
	velID
	tagID
)

type pos struct{ X, Y float64 }

func (*pos) ComponentID() ecs.ComponentID { return posID }

type vel struct{ X, Y float64 }

func (*vel) ComponentID() ecs.ComponentID { return velID }

type tag struct{}

func (*tag) ComponentID() ecs.ComponentID { return tagID }

type describer interface{ Describe() string }

func (p *pos) Describe() string { return "pos" }

func newTestRegistry() *ecs.Registry {
	r := ecs.NewRegistry()
	r.Register("Position", func(meta ecs.Metadata) (ecs.Component, error) {
		p := &pos{}
		if x, ok := meta["x"].(float64); ok {
			p.X = x
		}
		return p, nil
	})
	r.Register("Velocity", func(ecs.Metadata) (ecs.Component, error) { return &vel{}, nil })
	r.Register("Tag", func(ecs.Metadata) (ecs.Component, error) { return &tag{}, nil })
	return r
}

func TestSignatureKeyIsOrderIndependent(t *testing.T) {
	a := ecs.NewSignature(velID, posID, posID)
	b := ecs.NewSignature(posID, velID)

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, []ecs.ComponentID{posID, velID}, a.IDs())
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Contains(velID))
	assert.False(t, a.Contains(tagID))
}

func TestEntityAddReplacesSameComponent(t *testing.T) {
	e := ecs.NewEntity("thing")
	e.AddComponent(&pos{X: 1})
	e.AddComponent(&pos{X: 2})

	p, ok := ecs.Get[*pos](e)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.X)
	assert.Len(t, e.Components(), 1)
}

func TestEntityRemoveAbsentIsNoop(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	e := ecs.NewEntity("thing")
	require.NoError(t, w.AddEntity(e))

	removed := 0
	w.Query(posID).OnEntityRemoved(func(*ecs.Entity) { removed++ })

	e.RemoveComponent(posID)
	assert.Equal(t, 0, removed)
}

func TestMustGetPanicsOnAbsentComponent(t *testing.T) {
	e := ecs.NewEntity("thing")
	assert.Panics(t, func() { ecs.MustGet[*vel](e) })
	assert.False(t, ecs.Has[*vel](e))
}

func TestCapabilityFindsInterface(t *testing.T) {
	e := ecs.NewEntity("thing")
	e.AddComponent(&vel{})
	_, ok := ecs.Capability[describer](e)
	assert.False(t, ok)

	e.AddComponent(&pos{})
	d, ok := ecs.Capability[describer](e)
	require.True(t, ok)
	assert.Equal(t, "pos", d.Describe())
}

func TestBundleTracksComponentChangesAfterCreation(t *testing.T) {
	w := ecs.NewWorld(newTestRegistry(), nil)
	b := w.Query(posID, velID)

	e := w.MustSpawn(ecs.Blueprint{Type: "mover", Components: []ecs.ComponentSpec{{Name: "Position"}}})
	assert.False(t, b.Contains(e))

	e.AddComponent(&vel{})
	assert.True(t, b.Contains(e))

	e.RemoveComponent(posID)
	assert.False(t, b.Contains(e))

	e.AddComponent(&pos{})
	assert.True(t, b.Contains(e))
	assert.Equal(t, 1, b.Len())
}

func TestBundleAddThenRemoveRestoresMembership(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	b := w.Query(posID)

	in := ecs.NewEntity("a")
	in.AddComponent(&pos{})
	out := ecs.NewEntity("b")
	require.NoError(t, w.AddEntity(in))
	require.NoError(t, w.AddEntity(out))

	before := b.Entities()

	out.AddComponent(&pos{})
	out.RemoveComponent(posID)
	in.AddComponent(&tag{})
	in.RemoveComponent(tagID)

	assert.Equal(t, before, b.Entities())
}

func TestBundleRemovalIgnoresUnrelatedComponents(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	b := w.Query(posID)

	e := ecs.NewEntity("a")
	e.AddComponent(&pos{})
	e.AddComponent(&tag{})
	require.NoError(t, w.AddEntity(e))

	e.RemoveComponent(tagID)
	assert.True(t, b.Contains(e))
}

func TestBundleMembershipInvariant(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	sigs := [][]ecs.ComponentID{{posID}, {velID}, {posID, velID}, {posID, velID, tagID}}
	bundles := make([]*ecs.Bundle, len(sigs))
	for i, ids := range sigs {
		bundles[i] = w.Query(ids...)
	}

	entities := make([]*ecs.Entity, 6)
	for i := range entities {
		entities[i] = ecs.NewEntity("e")
		require.NoError(t, w.AddEntity(entities[i]))
	}

	ops := []func(){
		func() { entities[0].AddComponent(&pos{}) },
		func() { entities[1].AddComponent(&vel{}) },
		func() { entities[0].AddComponent(&vel{}) },
		func() { entities[2].AddComponent(&tag{}) },
		func() { entities[2].AddComponent(&pos{}) },
		func() { entities[2].AddComponent(&vel{}) },
		func() { entities[0].RemoveComponent(posID) },
		func() { w.RemoveEntity(entities[1]) },
		func() { entities[3].AddComponent(&pos{}) },
		func() { entities[2].RemoveComponent(tagID) },
	}

	for step, op := range ops {
		op()
		for i, b := range bundles {
			for _, e := range entities {
				want := !e.Removed() && b.Signature().Matches(e)
				assert.Equal(t, want, b.Contains(e), "step %d bundle %d entity %s", step, i, e.ID)
			}
		}
	}
}

func TestBundleEventsFire(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	b := w.Query(posID)

	var added, removed []*ecs.Entity
	b.OnEntityAdded(func(e *ecs.Entity) { added = append(added, e) })
	b.OnEntityRemoved(func(e *ecs.Entity) { removed = append(removed, e) })

	e := ecs.NewEntity("a")
	require.NoError(t, w.AddEntity(e))
	e.AddComponent(&pos{})
	e.AddComponent(&pos{})
	w.RemoveEntity(e)

	assert.Equal(t, []*ecs.Entity{e}, added)
	assert.Equal(t, []*ecs.Entity{e}, removed)
}

func TestBundlesAreSharedBySignature(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	a := w.Query(posID, velID)
	b := w.Bundle(ecs.NewSignature(velID, posID))

	assert.Same(t, a, b)
	assert.Equal(t, 1, w.BundleCount())
}

func TestLateBundleSeesExistingEntities(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	e := ecs.NewEntity("a")
	e.AddComponent(&pos{})
	require.NoError(t, w.AddEntity(e))

	assert.True(t, w.Query(posID).Contains(e))
}

func TestSpawnUnknownComponentFailsLoudly(t *testing.T) {
	w := ecs.NewWorld(newTestRegistry(), nil)

	_, err := w.Spawn(ecs.Blueprint{
		Type:       "broken",
		Components: []ecs.ComponentSpec{{Name: "Position"}, {Name: "Jetpack"}},
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ecs.ErrUnknownComponent))
	assert.Contains(t, err.Error(), "unknown component name")
	assert.Equal(t, 0, w.EntityCount())

	assert.Panics(t, func() {
		w.MustSpawn(ecs.Blueprint{Type: "broken", Components: []ecs.ComponentSpec{{Name: "Jetpack"}}})
	})
}

func TestSpawnBuildsComponentsFromMetadata(t *testing.T) {
	w := ecs.NewWorld(newTestRegistry(), nil)
	e, err := w.Spawn(ecs.Blueprint{
		Type:       "player",
		Components: []ecs.ComponentSpec{{Name: "position", Metadata: ecs.Metadata{"x": 12.0}}},
	})
	require.NoError(t, err)

	p := ecs.MustGet[*pos](e)
	assert.Equal(t, 12.0, p.X)
	assert.Equal(t, []*ecs.Entity{e}, w.GetEntitiesOfType("player"))

	got, ok := w.GetEntity(e.ID)
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestRemoveEntityEvictsBeforeDiscard(t *testing.T) {
	w := ecs.NewWorld(newTestRegistry(), nil)
	b := w.Query(posID)
	e := w.MustSpawn(ecs.Blueprint{Type: "a", Components: []ecs.ComponentSpec{{Name: "Position"}}})

	var stillRegistered bool
	b.OnEntityRemoved(func(removed *ecs.Entity) {
		_, stillRegistered = w.GetEntity(removed.ID)
	})

	var events []ecs.EventType
	w.GetEventManager().Subscribe(ecs.EventEntityRemoved, func(ev ecs.Event) { events = append(events, ev.Type()) })

	w.RemoveEntity(e)
	assert.True(t, stillRegistered)
	assert.True(t, e.Removed())
	assert.Equal(t, 0, w.EntityCount())
	assert.Empty(t, w.GetEntitiesOfType("a"))
	assert.Equal(t, []ecs.EventType{ecs.EventEntityRemoved}, events)

	// detached entities no longer affect bundles
	e.AddComponent(&pos{})
	assert.False(t, b.Contains(e))

	assert.True(t, eris.Is(w.RemoveEntityByID(e.ID), ecs.ErrEntityNotFound))
}

func TestAddEntityTwiceFails(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	e := ecs.NewEntity("a")
	require.NoError(t, w.AddEntity(e))
	assert.Error(t, w.AddEntity(e))
}

func TestBundleEachSkipsEntitiesRemovedMidIteration(t *testing.T) {
	w := ecs.NewWorld(nil, nil)
	b := w.Query(posID)
	entities := make([]*ecs.Entity, 4)
	for i := range entities {
		entities[i] = ecs.NewEntity("a")
		entities[i].AddComponent(&pos{})
		require.NoError(t, w.AddEntity(entities[i]))
	}

	var visited []*ecs.Entity
	b.Each(func(e *ecs.Entity) {
		visited = append(visited, e)
		if e == entities[0] {
			w.RemoveEntity(entities[0])
			w.RemoveEntity(entities[2])
		}
	})

	assert.Equal(t, []*ecs.Entity{entities[0], entities[1], entities[3]}, visited)
	assert.Equal(t, 2, b.Len())
}

func TestEventManagerUnsubscribe(t *testing.T) {
	em := ecs.NewEventManager()
	calls := 0
	sub := em.Subscribe(ecs.EventEntitySpawned, func(ecs.Event) { calls++ })
	em.Subscribe(ecs.EventEntitySpawned, func(ecs.Event) { calls += 10 })

	em.Emit(ecs.EntitySpawnedEvent{})
	em.Unsubscribe(sub)
	em.Emit(ecs.EntitySpawnedEvent{})

	assert.Equal(t, 21, calls)
}
