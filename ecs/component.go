package ecs

import (
	"sort"
	"strconv"
	"strings"
)

// ComponentID is a unique identifier for component types
type ComponentID uint

// Component is the base interface for all components.
// ComponentID must not dereference its receiver so that it can be called on a nil pointer.
type Component interface {
	ComponentID() ComponentID
}

// ComponentMap stores components by their type ID
type ComponentMap map[ComponentID]Component

// Signature is an ordered, deduplicated set of component IDs
type Signature struct {
	ids []ComponentID
	key string
}

// NewSignature builds a signature from the given IDs. Order and duplicates are irrelevant.
func NewSignature(ids ...ComponentID) Signature {
	set := make(map[ComponentID]struct{}, len(ids))
	sorted := make([]ComponentID, 0, len(ids))
	for _, id := range ids {
		if _, dup := set[id]; dup {
			continue
		}
		set[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}

	return Signature{ids: sorted, key: strings.Join(parts, "+")}
}

// Key returns the stable string key shared by equal signatures
func (s Signature) Key() string {
	return s.key
}

// IDs returns a copy of the component IDs in ascending order
func (s Signature) IDs() []ComponentID {
	out := make([]ComponentID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Contains reports whether id is part of the signature
func (s Signature) Contains(id ComponentID) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

// Matches reports whether the entity holds every component of the signature
func (s Signature) Matches(e *Entity) bool {
	for _, id := range s.ids {
		if !e.HasComponent(id) {
			return false
		}
	}
	return true
}

// Len returns the number of component IDs in the signature
func (s Signature) Len() int {
	return len(s.ids)
}
