package tilemap

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Decode reads a JSON tile map definition and builds the map
func Decode(r io.Reader) (*TileMap, error) {
	var def Definition
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, eris.Wrap(err, "failed to decode tile map")
	}
	return New(def)
}

// LoadFile loads a tile map from a JSON file
func LoadFile(path string) (*TileMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open tile map %s", path)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid tile map %s", path)
	}
	return m, nil
}
