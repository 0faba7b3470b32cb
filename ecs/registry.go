package ecs

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Metadata is the declarative property set of a blueprint component
type Metadata map[string]any

// Constructor builds a component from blueprint metadata
type Constructor func(meta Metadata) (Component, error)

// ComponentSpec names a component and its metadata inside a blueprint
type ComponentSpec struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Blueprint declares an entity: its type and the components to build
type Blueprint struct {
	Type       string          `json:"type"`
	Components []ComponentSpec `json:"components"`
}

// Registry maps component names to constructors. Lookups are case-insensitive.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register binds name to a constructor, replacing any earlier binding
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[strings.ToLower(name)] = ctor
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named component
func (r *Registry) Build(spec ComponentSpec) (Component, error) {
	ctor, exists := r.constructors[strings.ToLower(spec.Name)]
	if !exists {
		return nil, eris.Wrapf(ErrUnknownComponent, "component %q", spec.Name)
	}

	meta := spec.Metadata
	if meta == nil {
		meta = Metadata{}
	}

	c, err := ctor(meta)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to build component %q", spec.Name)
	}
	return c, nil
}

// BuildAll constructs every component of a blueprint, failing on the first error
func (r *Registry) BuildAll(bp Blueprint) ([]Component, error) {
	built := make([]Component, 0, len(bp.Components))
	for _, spec := range bp.Components {
		c, err := r.Build(spec)
		if err != nil {
			return nil, err
		}
		built = append(built, c)
	}
	return built, nil
}
