package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"

	"ebiten-platformer/ecs"
	"ebiten-platformer/logging"
)

// BlueprintFile is the on-disk form of a blueprint
type BlueprintFile struct {
	ID         string              `json:"id"`   // Unique identifier, used by spawners and remote commands
	Type       string              `json:"type"` // Entity type given to spawned entities, defaults to the ID
	Components []ecs.ComponentSpec `json:"components"`
}

// Blueprint converts the file form to an ecs blueprint
func (f BlueprintFile) Blueprint() ecs.Blueprint {
	entityType := f.Type
	if entityType == "" {
		entityType = f.ID
	}
	return ecs.Blueprint{Type: entityType, Components: f.Components}
}

// BlueprintManager manages all entity blueprints by ID
type BlueprintManager struct {
	blueprints map[string]ecs.Blueprint
	logger     logging.Logger
}

// NewBlueprintManager creates a manager preloaded with the built-in blueprints
func NewBlueprintManager(logger logging.Logger) *BlueprintManager {
	if logger == nil {
		logger = logging.Nop{}
	}
	m := &BlueprintManager{
		blueprints: make(map[string]ecs.Blueprint),
		logger:     logger,
	}
	for _, f := range builtinBlueprints() {
		m.Register(f.ID, f.Blueprint())
	}
	return m
}

// Register adds or replaces a blueprint
func (m *BlueprintManager) Register(id string, bp ecs.Blueprint) {
	m.blueprints[id] = bp
}

// Get returns a blueprint by ID
func (m *BlueprintManager) Get(id string) (ecs.Blueprint, bool) {
	bp, ok := m.blueprints[id]
	return bp, ok
}

// IDs returns every known blueprint ID, sorted
func (m *BlueprintManager) IDs() []string {
	ids := make([]string, 0, len(m.blueprints))
	for id := range m.blueprints {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadFromDirectory loads every JSON blueprint file in a directory
func (m *BlueprintManager) LoadFromDirectory(dirPath string) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return eris.Wrap(err, "failed to read blueprint directory")
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		if err := m.LoadFromFile(filepath.Join(dirPath, file.Name())); err != nil {
			return eris.Wrapf(err, "failed to load blueprint from %s", file.Name())
		}
		loaded++
	}

	m.logger.Info("blueprints loaded", "dir", dirPath, "count", loaded)
	return nil
}

// LoadFromFile loads a single blueprint from a JSON file
func (m *BlueprintManager) LoadFromFile(filePath string) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return eris.Wrap(err, "failed to read blueprint")
	}

	var f BlueprintFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return eris.Wrap(err, "failed to decode blueprint")
	}
	if err := ValidateBlueprint(f); err != nil {
		return err
	}

	m.Register(f.ID, f.Blueprint())
	return nil
}

// ValidateBlueprint ensures that the blueprint has all required fields
func ValidateBlueprint(f BlueprintFile) error {
	if f.ID == "" {
		return eris.New("blueprint missing id")
	}
	if len(f.Components) == 0 {
		return eris.Errorf("blueprint %q has no components", f.ID)
	}
	for i, c := range f.Components {
		if c.Name == "" {
			return eris.Errorf("blueprint %q component %d missing name", f.ID, i)
		}
	}
	return nil
}
