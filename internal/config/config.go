// Package config provides YAML-based game configuration loading and
// difficulty management for the copter game.
package config

// CopterConfig contains all configuration for the Copter game.
type CopterConfig struct {
	World      CopterWorld      `yaml:"world"`
	Physics    CopterPhysics    `yaml:"physics"`
	Obstacles  CopterObstacles  `yaml:"obstacles"`
	Craft      CopterCraft      `yaml:"craft"`
	Session    CopterSession    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CopterWorld defines the world extents in world units.
type CopterWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CopterPhysics defines per-tick motion parameters.
type CopterPhysics struct {
	Gravity   float64 `yaml:"gravity"`    // Added to velocity every tick
	LiftForce float64 `yaml:"lift_force"` // Velocity is set to -lift_force on impulse
	MaxSpeed  float64 `yaml:"max_speed"`  // Upper bound on velocity
	BaseSpeed float64 `yaml:"base_speed"` // Obstacle scroll speed per tick
}

// CopterObstacles defines the obstacle field layout.
type CopterObstacles struct {
	Count         int     `yaml:"count"`
	Width         float64 `yaml:"width"`
	Spacing       float64 `yaml:"spacing"`
	GapHalfHeight float64 `yaml:"gap_half_height"`
	GapMin        int     `yaml:"gap_min"`  // Lowest gap center
	GapSpan       int     `yaml:"gap_span"` // Gap centers fall in [gap_min, gap_min+gap_span)
}

// CopterCraft defines the controlled craft.
type CopterCraft struct {
	X         float64 `yaml:"x"`
	HalfWidth float64 `yaml:"half_width"`
	SpawnY    float64 `yaml:"spawn_y"`
	RotorStep float64 `yaml:"rotor_step"` // Degrees added to rotor phase per tick
}

// CopterSession defines the failure threshold.
type CopterSession struct {
	MaxCrashes int `yaml:"max_crashes"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
