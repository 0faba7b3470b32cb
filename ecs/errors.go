package ecs

import "github.com/rotisserie/eris"

var (
	// ErrUnknownComponent is returned when a blueprint names a component the registry does not know
	ErrUnknownComponent = eris.New("unknown component name")
	// ErrSystemDetached signals access to a system's world before it was attached
	ErrSystemDetached = eris.New("system is not attached to a world")
	// ErrMissingComponent signals a component that a signature promised is absent
	ErrMissingComponent = eris.New("missing component")
	// ErrEntityNotFound is returned when an entity ID is not registered with the world
	ErrEntityNotFound = eris.New("entity not found")
)
