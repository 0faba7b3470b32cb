package data

import "ebiten-platformer/ecs"

// Blueprint IDs used by the spawners
const (
	BlueprintPlayer     = "player"
	BlueprintCamera     = "camera"
	BlueprintCoin       = "coin"
	BlueprintHealthPack = "health_pack"
	BlueprintEnemy      = "enemy"
	BlueprintBall       = "ball"
)

func builtinBlueprints() []BlueprintFile {
	return []BlueprintFile{
		{
			ID: BlueprintPlayer,
			Components: []ecs.ComponentSpec{
				{Name: "Player"},
				{Name: "Position"},
				{Name: "RigidBody", Metadata: ecs.Metadata{"gravity": true}},
				{Name: "BoundingBox", Metadata: ecs.Metadata{"width": 12.0, "height": 14.0}},
				{Name: "PlayerMovement"},
				{Name: "Collector"},
				{Name: "Health", Metadata: ecs.Metadata{"max": 100.0}},
				{Name: "Renderable", Metadata: ecs.Metadata{"glyph": "@", "color": "#ffffff", "layer": 2.0}},
				{Name: "Animation"},
			},
		},
		{
			ID:         BlueprintCamera,
			Components: []ecs.ComponentSpec{{Name: "Camera"}},
		},
		{
			ID: BlueprintCoin,
			Components: []ecs.ComponentSpec{
				{Name: "Position"},
				{Name: "BoundingBox", Metadata: ecs.Metadata{"width": 8.0, "height": 8.0}},
				{Name: "Coin", Metadata: ecs.Metadata{"value": 1.0}},
				{Name: "Renderable", Metadata: ecs.Metadata{"glyph": "$", "color": "#ffd700", "layer": 1.0}},
			},
		},
		{
			ID: BlueprintHealthPack,
			Components: []ecs.ComponentSpec{
				{Name: "Position"},
				{Name: "BoundingBox", Metadata: ecs.Metadata{"width": 10.0, "height": 10.0}},
				{Name: "HealthPack", Metadata: ecs.Metadata{"amount": 25.0, "uses": 1.0}},
				{Name: "Renderable", Metadata: ecs.Metadata{"glyph": "+", "color": "#ff4040", "layer": 1.0}},
			},
		},
		{
			ID: BlueprintEnemy,
			Components: []ecs.ComponentSpec{
				{Name: "Position"},
				{Name: "RigidBody", Metadata: ecs.Metadata{"gravity": true, "velocity": map[string]any{"x": 40.0}}},
				{Name: "BoundingBox", Metadata: ecs.Metadata{"width": 12.0, "height": 12.0}},
				{Name: "Movement"},
				{Name: "Health", Metadata: ecs.Metadata{"max": 3.0}},
				{Name: "Hazard", Metadata: ecs.Metadata{"damage": 10.0, "cooldown": 1.0}},
				{Name: "Renderable", Metadata: ecs.Metadata{"glyph": "g", "color": "#40c040", "layer": 2.0}},
				{Name: "Animation"},
			},
		},
		{
			ID: BlueprintBall,
			Components: []ecs.ComponentSpec{
				{Name: "Position"},
				{Name: "RigidBody", Metadata: ecs.Metadata{"gravity": true, "bounciness": 0.6}},
				{Name: "BoundingBox", Metadata: ecs.Metadata{"width": 8.0, "height": 8.0}},
				{Name: "Renderable", Metadata: ecs.Metadata{"glyph": "o", "color": "#8080ff", "layer": 1.0}},
			},
		},
	}
}
