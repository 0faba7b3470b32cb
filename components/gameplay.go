package components

import (
	"github.com/google/uuid"

	"ebiten-platformer/ecs"
)

// Projectile marks a short-lived body fired by another entity
type Projectile struct {
	Lifetime float64 // seconds left before it expires
	Damage   int
	Owner    uuid.UUID

	hit bool
}

// NewProjectile creates a projectile living for lifetime seconds
func NewProjectile(lifetime float64, damage int, owner uuid.UUID) *Projectile {
	return &Projectile{Lifetime: lifetime, Damage: damage, Owner: owner}
}

func (*Projectile) ComponentID() ecs.ComponentID { return ProjectileID }

// MarkHit flags the projectile for removal
func (p *Projectile) MarkHit() {
	p.hit = true
}

// Expired reports whether the projectile hit something or ran out of time
func (p *Projectile) Expired() bool {
	return p.hit || p.Lifetime <= 0
}

// Hazard hurts players on contact, at most once per Cooldown seconds
type Hazard struct {
	Damage   int
	Cooldown float64

	wait float64
}

func (*Hazard) ComponentID() ecs.ComponentID { return HazardID }

// Tick counts the cooldown down and reports whether the hazard can strike
func (h *Hazard) Tick(dt float64) bool {
	if h.wait > 0 {
		h.wait -= dt
	}
	return h.wait <= 0
}

// Strike starts the cooldown
func (h *Hazard) Strike() {
	h.wait = h.Cooldown
}

// Collector can pick up consumables and keeps their score
type Collector struct {
	Score int
}

func (*Collector) ComponentID() ecs.ComponentID { return CollectorID }

// Health stores hit points, always within [0, Max]
type Health struct {
	Current int
	Max     int
}

// NewHealth creates full health
func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}

func (*Health) ComponentID() ecs.ComponentID { return HealthID }

// Clamp forces Current into [0, Max]
func (h *Health) Clamp() {
	if h.Max < 0 {
		h.Max = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	if h.Current < 0 {
		h.Current = 0
	}
}

// Damage removes hit points and returns how many were actually lost
func (h *Health) Damage(amount int) int {
	before := h.Current
	h.Current -= amount
	h.Clamp()
	return before - h.Current
}

// Heal restores hit points and returns how many were actually gained
func (h *Health) Heal(amount int) int {
	before := h.Current
	h.Current += amount
	h.Clamp()
	return h.Current - before
}

// Alive reports whether any hit points remain
func (h *Health) Alive() bool {
	return h.Current > 0
}

// Coin adds its value to the collector's score
type Coin struct {
	Value int
}

func (*Coin) ComponentID() ecs.ComponentID { return CoinID }

// Consume credits the collector. Coins are always used up.
func (c *Coin) Consume(collector *ecs.Entity) (bool, bool) {
	wallet, ok := ecs.Get[*Collector](collector)
	if ok {
		wallet.Score += c.Value
	}
	return ok, true
}

// HealthPack heals collectors with combat stats. Each pack has a number of uses.
type HealthPack struct {
	Amount int
	Uses   int
}

func (*HealthPack) ComponentID() ecs.ComponentID { return HealthPackID }

// Consume heals the collector if it can be healed and is hurt
func (h *HealthPack) Consume(collector *ecs.Entity) (bool, bool) {
	stats, ok := ecs.Capability[CombatStats](collector)
	if !ok || h.Uses <= 0 {
		return false, h.Uses <= 0
	}
	if stats.Heal(h.Amount) == 0 {
		return false, false
	}
	h.Uses--
	return true, h.Uses <= 0
}
