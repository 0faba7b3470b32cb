package spawners

import (
	"math/rand"
)

// LootTable defines a table of possible pickups and their relative chances
type LootTable struct {
	Entries []LootTableEntry
}

// LootTableEntry represents a single entry in a loot table
type LootTableEntry struct {
	Blueprint string
	Weight    int
}

// NewLootTable creates a new loot table
func NewLootTable(entries []LootTableEntry) *LootTable {
	return &LootTable{
		Entries: entries,
	}
}

// Roll picks one blueprint ID, weighted. Returns false for an empty table.
func (lt *LootTable) Roll(rng *rand.Rand) (string, bool) {
	totalWeight := 0
	for _, entry := range lt.Entries {
		if entry.Weight > 0 {
			totalWeight += entry.Weight
		}
	}
	if totalWeight == 0 {
		return "", false
	}

	roll := rng.Intn(totalWeight)
	for _, entry := range lt.Entries {
		if entry.Weight <= 0 {
			continue
		}
		if roll < entry.Weight {
			return entry.Blueprint, true
		}
		roll -= entry.Weight
	}
	return "", false
}
