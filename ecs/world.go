package ecs

import (
	"github.com/rotisserie/eris"

	"ebiten-platformer/logging"
)

// World event types
const (
	EventEntitySpawned EventType = "entity_spawned"
	EventEntityRemoved EventType = "entity_removed"
)

// EntitySpawnedEvent is emitted after an entity is registered and its components are routed
type EntitySpawnedEvent struct {
	Entity *Entity
}

// Type returns the event type
func (e EntitySpawnedEvent) Type() EventType {
	return EventEntitySpawned
}

// EntityRemovedEvent is emitted after an entity left every bundle and the world
type EntityRemovedEvent struct {
	Entity *Entity
}

// Type returns the event type
func (e EntityRemovedEvent) Type() EventType {
	return EventEntityRemoved
}

// World manages all entities, bundles and systems
type World struct {
	entities map[EntityID]*Entity
	// Registration order, for deterministic bundle population
	order []*Entity
	// Type-based entity lookup for quick access
	entityTypes map[string]map[EntityID]*Entity

	bundles     map[string]*Bundle
	bundleOrder []*Bundle

	// Execution order is registration order
	systems []System

	registry     *Registry
	eventManager *EventManager
	router       *componentRouter
	logger       logging.Logger
}

// componentRouter forwards every entity notification to every bundle
type componentRouter struct {
	world *World
}

func (r *componentRouter) ComponentAdded(e *Entity, c Component) {
	bundles := r.world.bundleOrder
	for i := 0; i < len(bundles); i++ {
		bundles[i].onComponentAdded(e, c)
	}
}

func (r *componentRouter) ComponentRemoved(e *Entity, c Component) {
	bundles := r.world.bundleOrder
	for i := 0; i < len(bundles); i++ {
		bundles[i].onComponentRemoved(e, c)
	}
}

// NewWorld creates a new ECS world. A nil registry starts empty, a nil logger discards.
func NewWorld(registry *Registry, logger logging.Logger) *World {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	w := &World{
		entities:     make(map[EntityID]*Entity),
		entityTypes:  make(map[string]map[EntityID]*Entity),
		bundles:      make(map[string]*Bundle),
		systems:      make([]System, 0),
		registry:     registry,
		eventManager: NewEventManager(),
		logger:       logger,
	}
	w.router = &componentRouter{world: w}
	return w
}

// Registry returns the component registry used by Spawn
func (w *World) Registry() *Registry {
	return w.registry
}

// Logger returns the world logger
func (w *World) Logger() logging.Logger {
	return w.logger
}

// Spawn instantiates an entity from a blueprint. Components are built before the
// entity is registered, so an unknown component name leaves the world untouched.
func (w *World) Spawn(bp Blueprint) (*Entity, error) {
	built, err := w.registry.BuildAll(bp)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to spawn %q", bp.Type)
	}

	entity := NewEntity(bp.Type)
	w.register(entity)
	for _, c := range built {
		entity.AddComponent(c)
	}

	w.logger.Debug("entity spawned", "id", entity.ID, "type", entity.Type, "components", len(built))
	w.eventManager.Emit(EntitySpawnedEvent{Entity: entity})
	return entity, nil
}

// MustSpawn is Spawn for blueprints that are known to be valid. Panics on error.
func (w *World) MustSpawn(bp Blueprint) *Entity {
	e, err := w.Spawn(bp)
	if err != nil {
		panic(err)
	}
	return e
}

// AddEntity registers an entity built directly by code. Components attached
// before registration are replayed through the notification path.
func (w *World) AddEntity(entity *Entity) error {
	if entity.world != nil || entity.removed {
		return eris.Errorf("entity %s cannot be added: already registered or removed", entity.ID)
	}

	w.register(entity)
	for _, id := range NewSignature(componentIDs(entity)...).IDs() {
		w.router.ComponentAdded(entity, entity.components[id])
	}

	w.logger.Debug("entity added", "id", entity.ID, "type", entity.Type)
	w.eventManager.Emit(EntitySpawnedEvent{Entity: entity})
	return nil
}

func (w *World) register(entity *Entity) {
	entity.world = w
	entity.AddListener(w.router)

	w.entities[entity.ID] = entity
	w.order = append(w.order, entity)
	if _, exists := w.entityTypes[entity.Type]; !exists {
		w.entityTypes[entity.Type] = make(map[EntityID]*Entity)
	}
	w.entityTypes[entity.Type][entity.ID] = entity
}

// RemoveEntity evicts the entity from every bundle, then discards it. No-op for
// entities that are not registered with this world.
func (w *World) RemoveEntity(entity *Entity) {
	if entity == nil || entity.world != w || entity.removed {
		return
	}

	for _, b := range w.bundleOrder {
		b.remove(entity)
	}

	entity.removed = true
	entity.RemoveListener(w.router)

	delete(w.entities, entity.ID)
	for i, e := range w.order {
		if e == entity {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if typed, exists := w.entityTypes[entity.Type]; exists {
		delete(typed, entity.ID)
		if len(typed) == 0 {
			delete(w.entityTypes, entity.Type)
		}
	}

	w.logger.Debug("entity removed", "id", entity.ID, "type", entity.Type)
	w.eventManager.Emit(EntityRemovedEvent{Entity: entity})
}

// RemoveEntityByID removes the entity with the given ID
func (w *World) RemoveEntityByID(id EntityID) error {
	entity, exists := w.entities[id]
	if !exists {
		return eris.Wrapf(ErrEntityNotFound, "entity %s", id)
	}
	w.RemoveEntity(entity)
	return nil
}

// GetEntity returns an entity by its ID
func (w *World) GetEntity(id EntityID) (*Entity, bool) {
	entity, exists := w.entities[id]
	return entity, exists
}

// GetAllEntities returns all entities in registration order
func (w *World) GetAllEntities() []*Entity {
	out := make([]*Entity, len(w.order))
	copy(out, w.order)
	return out
}

// EntityCount returns the number of registered entities
func (w *World) EntityCount() int {
	return len(w.entities)
}

// GetEntitiesOfType returns all entities of a semantic type
func (w *World) GetEntitiesOfType(entityType string) []*Entity {
	typed := w.entityTypes[entityType]
	out := make([]*Entity, 0, len(typed))
	for _, e := range w.order {
		if _, ok := typed[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Bundle returns the bundle for sig, creating and populating it on first request
func (w *World) Bundle(sig Signature) *Bundle {
	if b, exists := w.bundles[sig.Key()]; exists {
		return b
	}

	b := newBundle(sig)
	w.bundles[sig.Key()] = b
	w.bundleOrder = append(w.bundleOrder, b)
	for _, e := range w.order {
		b.addIfMatch(e)
	}
	return b
}

// Query is a shortcut for Bundle(NewSignature(ids...))
func (w *World) Query(ids ...ComponentID) *Bundle {
	return w.Bundle(NewSignature(ids...))
}

// BundleCount returns the number of distinct bundles
func (w *World) BundleCount() int {
	return len(w.bundles)
}

// AddSystem appends a system to the execution order and attaches it
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	system.base().world = w
	w.Bundle(system.Signature())
	system.AddedToWorld()
}

// RemoveSystem detaches a system. No-op if the system is not part of this world.
func (w *World) RemoveSystem(system System) {
	for i, s := range w.systems {
		if s != system {
			continue
		}
		w.systems = append(w.systems[:i], w.systems[i+1:]...)
		system.RemovedFromWorld()
		system.base().world = nil
		return
	}
}

// GetSystems returns all systems in execution order
func (w *World) GetSystems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs one fixed simulation step over every Updater in registration order
func (w *World) Update(dt float64) {
	for _, system := range w.GetSystems() {
		if updater, ok := system.(Updater); ok {
			updater.Update(dt)
		}
	}
}

// Render runs every Renderer once for a displayed frame
func (w *World) Render(alpha float64) {
	for _, system := range w.GetSystems() {
		if renderer, ok := system.(Renderer); ok {
			renderer.Render(alpha)
		}
	}
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent is a convenience method to emit an event
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}

func componentIDs(e *Entity) []ComponentID {
	ids := make([]ComponentID, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	return ids
}
