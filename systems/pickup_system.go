package systems

import (
	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
	"ebiten-platformer/geom"
)

// PickupSystem lets collectors consume the items they overlap.
// Any entity with a position, a bounding box and a Consumable component is an item.
type PickupSystem struct {
	ecs.BaseSystem
	items *ecs.Bundle
}

// NewPickupSystem creates a pickup system
func NewPickupSystem() *PickupSystem {
	return &PickupSystem{
		BaseSystem: ecs.NewBaseSystem(components.CollectorID, components.PositionID, components.BoundingBoxID),
	}
}

// AddedToWorld resolves the bundle of candidate items
func (s *PickupSystem) AddedToWorld() {
	s.items = s.World().Query(components.PositionID, components.BoundingBoxID)
}

// Update checks every collector against every item
func (s *PickupSystem) Update(dt float64) {
	world := s.World()
	s.Bundle().Each(func(collector *ecs.Entity) {
		reach := boxOf(collector)

		s.items.Each(func(item *ecs.Entity) {
			if item == collector || collector.Removed() {
				return
			}
			consumable, ok := ecs.Capability[components.Consumable](item)
			if !ok || !reach.Overlaps(boxOf(item)) {
				return
			}

			applied, depleted := consumable.Consume(collector)
			if applied {
				world.EmitEvent(ItemConsumedEvent{Collector: collector, Item: item, Depleted: depleted})
			}
			if depleted {
				world.Logger().Debug("item consumed", "collector", collector.ID, "item", item.Type)
				world.RemoveEntity(item)
			}
		})
	})
}

// boxOf returns the world box of an entity with a position and a bounding box
func boxOf(e *ecs.Entity) geom.Box {
	pos := ecs.MustGet[*components.Position](e)
	box := ecs.MustGet[*components.BoundingBox](e)
	return box.At(pos.Vec())
}
