package config

import (
	_ "embed"
)

//go:embed defaults/copter.yaml
var defaultCopterYAML []byte

// DefaultCopterConfig returns the default Copter configuration.
func DefaultCopterConfig() CopterConfig {
	return CopterConfig{
		World: CopterWorld{
			Width:  100,
			Height: 100,
		},
		Physics: CopterPhysics{
			Gravity:   0.05,
			LiftForce: 1.2,
			MaxSpeed:  2.0,
			BaseSpeed: 0.5,
		},
		Obstacles: CopterObstacles{
			Count:         5,
			Width:         5,
			Spacing:       30,
			GapHalfHeight: 10,
			GapMin:        20,
			GapSpan:       60,
		},
		Craft: CopterCraft{
			X:         20,
			HalfWidth: 5,
			SpawnY:    50,
			RotorStep: 10,
		},
		Session: CopterSession{
			MaxCrashes: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "copter":
		return defaultCopterYAML
	default:
		return nil
	}
}
