package ecs

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// EntityID is a unique identifier for an entity
type EntityID = uuid.UUID

// ComponentListener receives component changes of an entity, synchronously and in order
type ComponentListener interface {
	ComponentAdded(e *Entity, c Component)
	ComponentRemoved(e *Entity, c Component)
}

// Entity represents a game object in the ECS architecture
type Entity struct {
	ID EntityID
	// Type is the semantic kind of the entity (e.g., "player", "projectile")
	Type string

	components ComponentMap
	listeners  []ComponentListener
	world      *World
	removed    bool
}

// NewEntity creates a new entity of the given type with a fresh ID
func NewEntity(entityType string) *Entity {
	return &Entity{
		ID:         uuid.New(),
		Type:       entityType,
		components: make(ComponentMap),
	}
}

// AddComponent attaches c, replacing any component with the same ID
func (e *Entity) AddComponent(c Component) {
	e.components[c.ComponentID()] = c
	for _, l := range e.listeners {
		l.ComponentAdded(e, c)
	}
}

// RemoveComponent detaches the component with the given ID. No-op if absent.
func (e *Entity) RemoveComponent(id ComponentID) {
	c, exists := e.components[id]
	if !exists {
		return
	}
	delete(e.components, id)
	for _, l := range e.listeners {
		l.ComponentRemoved(e, c)
	}
}

// GetComponent retrieves a component by ID
func (e *Entity) GetComponent(id ComponentID) (Component, bool) {
	c, exists := e.components[id]
	return c, exists
}

// HasComponent checks if the entity has a specific component
func (e *Entity) HasComponent(id ComponentID) bool {
	_, exists := e.components[id]
	return exists
}

// Components returns the attached components. The map must not be modified.
func (e *Entity) Components() ComponentMap {
	return e.components
}

// World returns the world the entity is registered with, or nil
func (e *Entity) World() *World {
	return e.world
}

// Removed reports whether the entity has been removed from its world
func (e *Entity) Removed() bool {
	return e.removed
}

// AddListener registers a component change listener
func (e *Entity) AddListener(l ComponentListener) {
	e.listeners = append(e.listeners, l)
}

// RemoveListener unregisters a component change listener
func (e *Entity) RemoveListener(l ComponentListener) {
	for i, existing := range e.listeners {
		if existing == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Get returns the component of type T attached to e
func Get[T Component](e *Entity) (T, bool) {
	var zero T
	c, exists := e.components[zero.ComponentID()]
	if !exists {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// MustGet returns the component of type T and panics when it is absent.
// Used where a system signature guarantees presence.
func MustGet[T Component](e *Entity) T {
	c, ok := Get[T](e)
	if !ok {
		var zero T
		panic(eris.Wrapf(ErrMissingComponent, "entity %s (%s) has no component %d", e.ID, e.Type, zero.ComponentID()))
	}
	return c
}

// Has reports whether a component of type T is attached to e
func Has[T Component](e *Entity) bool {
	var zero T
	return e.HasComponent(zero.ComponentID())
}

// Capability returns the first attached component implementing T, in ascending component ID order
func Capability[T any](e *Entity) (T, bool) {
	var found T
	var foundID ComponentID
	ok := false
	for id, c := range e.components {
		typed, is := c.(T)
		if !is {
			continue
		}
		if !ok || id < foundID {
			found, foundID, ok = typed, id, true
		}
	}
	return found, ok
}
