// Package remote is the boundary between the simulation and anything outside
// it: editors, network peers, replay files. Commands arrive as JSON, are queued
// from any goroutine and applied on the simulation goroutine.
package remote

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/rotisserie/eris"

	"ebiten-platformer/ecs"
)

// Op names a command
type Op string

const (
	OpPlaceTile     Op = "place-tile"
	OpSpawnEntity   Op = "spawn-entity"
	OpDespawnEntity Op = "despawn-entity"
)

// ErrUnknownOp is returned for commands with an unsupported op
var ErrUnknownOp = eris.New("unknown command op")

// Command is one decoded request. Which fields are used depends on Op:
//
//	place-tile:     row, col and either tileType or solid
//	spawn-entity:   blueprint or components, x, y
//	despawn-entity: entity
type Command struct {
	Op Op `json:"op"`

	Row      int   `json:"row,omitempty"`
	Col      int   `json:"col,omitempty"`
	TileType *int  `json:"tileType,omitempty"`
	Solid    *bool `json:"solid,omitempty"`

	Blueprint  string              `json:"blueprint,omitempty"`
	Type       string              `json:"type,omitempty"`
	Components []ecs.ComponentSpec `json:"components,omitempty"`
	X          float64             `json:"x,omitempty"`
	Y          float64             `json:"y,omitempty"`

	Entity string `json:"entity,omitempty"`
}

// Validate checks that the fields required by the op are present
func (c Command) Validate() error {
	switch c.Op {
	case OpPlaceTile:
		if c.TileType == nil && c.Solid == nil {
			return eris.New("place-tile needs tileType or solid")
		}
	case OpSpawnEntity:
		if c.Blueprint == "" && len(c.Components) == 0 {
			return eris.New("spawn-entity needs blueprint or components")
		}
	case OpDespawnEntity:
		if c.Entity == "" {
			return eris.New("despawn-entity needs entity")
		}
	default:
		return eris.Wrapf(ErrUnknownOp, "op %q", c.Op)
	}
	return nil
}

// Decode reads a single command
func Decode(raw []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(raw, &c); err != nil {
		return Command{}, eris.Wrap(err, "failed to decode command")
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// Stream decodes a sequence of JSON commands from r and calls fn for each one,
// stopping at EOF, on the first decode error or when fn returns an error.
func Stream(r io.Reader, fn func(Command) error) error {
	dec := json.NewDecoder(r)
	for {
		var c Command
		err := dec.Decode(&c)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "failed to decode command stream")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
}
