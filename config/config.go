package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// Config is the runtime configuration of the simulation
type Config struct {
	Simulation Simulation `toml:"simulation"`
	Physics    Physics    `toml:"physics"`
	Window     Window     `toml:"window"`
	Assets     Assets     `toml:"assets"`
	Generation Generation `toml:"generation"`
}

// Simulation configures the fixed-timestep loop
type Simulation struct {
	MsPerUpdate      float64 `toml:"ms_per_update"`
	MaxStepsPerFrame int     `toml:"max_steps_per_frame"`
}

// Step returns the fixed step as a duration
func (s Simulation) Step() time.Duration {
	return time.Duration(s.MsPerUpdate * float64(time.Millisecond))
}

// Physics configures PhysicsSystem
type Physics struct {
	// Gravity is the downward acceleration in pixels per second squared. It is also the fall speed cap.
	Gravity float64 `toml:"gravity"`
	// Epsilon is the gap left between a body and the tile it was snapped against
	Epsilon float64 `toml:"epsilon"`
	// MaxStepFraction caps per-step displacement on each axis to this fraction of a tile
	MaxStepFraction float64 `toml:"max_step_fraction"`
}

// Window configures the ebiten window
type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Fullscreen bool   `toml:"fullscreen"`
}

// Assets points to optional level, blueprint and tileset files
type Assets struct {
	Level      string `toml:"level"`
	Blueprints string `toml:"blueprints"`
	// Tileset is a CP437-ordered spritesheet. Without one, tiles and glyphs are drawn as shapes.
	Tileset     string `toml:"tileset"`
	TilesetCell int    `toml:"tileset_cell"` // source cell size in pixels
}

// Generation configures the procedural level used when no level asset is set
type Generation struct {
	Seed int64 `toml:"seed"`
	Rows int   `toml:"rows"`
	Cols int   `toml:"cols"`
}

// Default returns the built-in configuration
func Default() Config {
	w, h := GetWindowSize()
	return Config{
		Simulation: Simulation{
			MsPerUpdate:      1000.0 / 60.0,
			MaxStepsPerFrame: 240,
		},
		Physics: Physics{
			Gravity:         900,
			Epsilon:         0.01,
			MaxStepFraction: 0.95,
		},
		Window: Window{
			Width:  w,
			Height: h,
			Title:  "Ebiten Platformer",
		},
		Assets: Assets{
			TilesetCell: 12,
		},
		Generation: Generation{
			Seed: 1,
			Rows: 30,
			Cols: 80,
		},
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, eris.Wrapf(err, "failed to read config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Decode parses TOML text on top of the defaults
func Decode(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the invariants the simulation relies on
func (c Config) Validate() error {
	if c.Simulation.MsPerUpdate <= 0 {
		return eris.Errorf("ms_per_update must be positive, got %v", c.Simulation.MsPerUpdate)
	}
	if c.Simulation.MaxStepsPerFrame < 1 {
		return eris.Errorf("max_steps_per_frame must be at least 1, got %d", c.Simulation.MaxStepsPerFrame)
	}
	if c.Physics.Gravity < 0 {
		return eris.Errorf("gravity must not be negative, got %v", c.Physics.Gravity)
	}
	if c.Physics.Epsilon <= 0 || c.Physics.Epsilon >= 1 {
		return eris.Errorf("epsilon must be in (0, 1), got %v", c.Physics.Epsilon)
	}
	if c.Physics.MaxStepFraction <= 0 || c.Physics.MaxStepFraction > 1 {
		return eris.Errorf("max_step_fraction must be in (0, 1], got %v", c.Physics.MaxStepFraction)
	}
	if c.Assets.Tileset != "" && c.Assets.TilesetCell <= 0 {
		return eris.Errorf("tileset_cell must be positive, got %d", c.Assets.TilesetCell)
	}
	if c.Generation.Rows < 4 || c.Generation.Cols < 4 {
		return eris.Errorf("generated level must be at least 4x4, got %dx%d", c.Generation.Rows, c.Generation.Cols)
	}
	return nil
}
