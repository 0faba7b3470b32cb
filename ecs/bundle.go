package ecs

// EntityHandler is called with an entity entering or leaving a bundle
type EntityHandler func(*Entity)

// Bundle is a live index of entities holding every component of a signature.
// Membership is kept current from component notifications routed by the World.
type Bundle struct {
	signature Signature
	entities  []*Entity
	index     map[*Entity]struct{}

	onAdded   []EntityHandler
	onRemoved []EntityHandler
}

func newBundle(sig Signature) *Bundle {
	return &Bundle{
		signature: sig,
		entities:  make([]*Entity, 0, 16),
		index:     make(map[*Entity]struct{}),
	}
}

// Signature returns the bundle signature
func (b *Bundle) Signature() Signature {
	return b.signature
}

// Len returns the number of member entities
func (b *Bundle) Len() int {
	return len(b.entities)
}

// Contains reports whether e is currently a member
func (b *Bundle) Contains(e *Entity) bool {
	_, ok := b.index[e]
	return ok
}

// Entities returns a snapshot of the members in insertion order.
// Mutating the world while ranging over the snapshot is safe.
func (b *Bundle) Entities() []*Entity {
	out := make([]*Entity, len(b.entities))
	copy(out, b.entities)
	return out
}

// Each calls fn for every member of a snapshot taken at call time,
// skipping entities evicted by an earlier call of fn
func (b *Bundle) Each(fn func(*Entity)) {
	for _, e := range b.Entities() {
		if !b.Contains(e) {
			continue
		}
		fn(e)
	}
}

// OnEntityAdded registers a handler called after an entity joins the bundle
func (b *Bundle) OnEntityAdded(h EntityHandler) {
	b.onAdded = append(b.onAdded, h)
}

// OnEntityRemoved registers a handler called after an entity leaves the bundle
func (b *Bundle) OnEntityRemoved(h EntityHandler) {
	b.onRemoved = append(b.onRemoved, h)
}

// addIfMatch inserts e when it satisfies the signature and is not already present
func (b *Bundle) addIfMatch(e *Entity) {
	if e.removed || b.Contains(e) || !b.signature.Matches(e) {
		return
	}
	b.entities = append(b.entities, e)
	b.index[e] = struct{}{}
	for _, h := range b.onAdded {
		h(e)
	}
}

// remove evicts e. No-op if e is not a member.
func (b *Bundle) remove(e *Entity) {
	if !b.Contains(e) {
		return
	}
	delete(b.index, e)
	for i, member := range b.entities {
		if member == e {
			b.entities = append(b.entities[:i], b.entities[i+1:]...)
			break
		}
	}
	for _, h := range b.onRemoved {
		h(e)
	}
}

func (b *Bundle) onComponentAdded(e *Entity, _ Component) {
	b.addIfMatch(e)
}

func (b *Bundle) onComponentRemoved(e *Entity, c Component) {
	if b.signature.Contains(c.ComponentID()) {
		b.remove(e)
	}
}
