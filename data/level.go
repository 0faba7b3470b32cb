package data

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"ebiten-platformer/tilemap"
)

// Spawn places one blueprint in a level
type Spawn struct {
	Blueprint string  `json:"blueprint"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Level is a tile map plus the entities placed on it. A level without a
// player spawn gets the player at the first free spot on the ground.
type Level struct {
	Name   string             `json:"name"`
	Map    tilemap.Definition `json:"map"`
	Spawns []Spawn            `json:"spawns"`
}

// TileMap builds the level's tile map
func (l *Level) TileMap() (*tilemap.TileMap, error) {
	m, err := tilemap.New(l.Map)
	if err != nil {
		return nil, eris.Wrapf(err, "level %q", l.Name)
	}
	return m, nil
}

// PlayerSpawn returns the first player spawn, if any
func (l *Level) PlayerSpawn() (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Blueprint == BlueprintPlayer {
			return s, true
		}
	}
	return Spawn{}, false
}

// DecodeLevel reads a level from JSON
func DecodeLevel(r io.Reader) (*Level, error) {
	var level Level
	if err := json.NewDecoder(r).Decode(&level); err != nil {
		return nil, eris.Wrap(err, "failed to decode level")
	}
	return &level, nil
}

// LoadLevel reads a level file
func LoadLevel(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to open level")
	}
	defer f.Close()

	level, err := DecodeLevel(f)
	if err != nil {
		return nil, eris.Wrapf(err, "level file %s", path)
	}
	return level, nil
}
