package copter

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-copter/internal/config"
)

// ErrInvalidConfig is wrapped by every WorldConfig validation failure.
var ErrInvalidConfig = errors.New("invalid world config")

// WorldConfig holds the immutable constants of one simulation.
// Distances are world units, motion values are per tick.
type WorldConfig struct {
	Width  float64 // World extent along the scroll axis
	Height float64 // World extent along the free axis

	Gravity   float64 // Added to craft velocity every tick
	LiftForce float64 // Impulse sets velocity to -LiftForce
	MaxSpeed  float64 // Velocity upper bound after integration

	MaxCrashes int // Crash count at which the session ends

	ObstacleCount   int
	ObstacleWidth   float64
	ObstacleSpacing float64 // Initial horizontal interval between obstacles
	ObstacleSpeed   float64 // Scroll distance per tick
	GapHalfHeight   float64
	GapMin          int // Lowest gap center
	GapSpan         int // Gap centers are drawn from [GapMin, GapMin+GapSpan)

	CraftX         float64 // Fixed horizontal position of the craft
	CraftHalfWidth float64 // Half of the craft's horizontal footprint
	SpawnY         float64 // Respawn height
	RotorStep      float64 // Rotor phase advance per tick
}

// DefaultWorld returns the classic tuning: a 100x100 world with five
// obstacles and a 50 crash budget.
func DefaultWorld() WorldConfig {
	return WorldFromConfig(config.DefaultCopterConfig())
}

// WorldFromConfig converts the YAML configuration into world constants.
func WorldFromConfig(cfg config.CopterConfig) WorldConfig {
	return WorldConfig{
		Width:           cfg.World.Width,
		Height:          cfg.World.Height,
		Gravity:         cfg.Physics.Gravity,
		LiftForce:       cfg.Physics.LiftForce,
		MaxSpeed:        cfg.Physics.MaxSpeed,
		MaxCrashes:      cfg.Session.MaxCrashes,
		ObstacleCount:   cfg.Obstacles.Count,
		ObstacleWidth:   cfg.Obstacles.Width,
		ObstacleSpacing: cfg.Obstacles.Spacing,
		ObstacleSpeed:   cfg.Physics.BaseSpeed,
		GapHalfHeight:   cfg.Obstacles.GapHalfHeight,
		GapMin:          cfg.Obstacles.GapMin,
		GapSpan:         cfg.Obstacles.GapSpan,
		CraftX:          cfg.Craft.X,
		CraftHalfWidth:  cfg.Craft.HalfWidth,
		SpawnY:          cfg.Craft.SpawnY,
		RotorStep:       cfg.Craft.RotorStep,
	}
}

// Validate reports the first malformed constant.
func (w WorldConfig) Validate() error {
	switch {
	case !finite(w.Width, w.Height, w.Gravity, w.LiftForce, w.MaxSpeed,
		w.ObstacleWidth, w.ObstacleSpacing, w.ObstacleSpeed, w.GapHalfHeight,
		w.CraftX, w.CraftHalfWidth, w.SpawnY, w.RotorStep):
		return invalid("values must be finite numbers")
	case w.Width <= 0 || w.Height <= 0:
		return invalid("world extents must be positive, got %gx%g", w.Width, w.Height)
	case w.MaxCrashes <= 0:
		return invalid("max crashes must be positive, got %d", w.MaxCrashes)
	case w.Gravity < 0:
		return invalid("gravity must not be negative, got %g", w.Gravity)
	case w.LiftForce <= 0:
		return invalid("lift force must be positive, got %g", w.LiftForce)
	case w.MaxSpeed <= 0:
		return invalid("max speed must be positive, got %g", w.MaxSpeed)
	case w.ObstacleCount <= 0:
		return invalid("obstacle count must be positive, got %d", w.ObstacleCount)
	case w.ObstacleWidth <= 0:
		return invalid("obstacle width must be positive, got %g", w.ObstacleWidth)
	case w.ObstacleSpacing < 0:
		return invalid("obstacle spacing must not be negative, got %g", w.ObstacleSpacing)
	case w.ObstacleSpeed < 0:
		return invalid("obstacle speed must not be negative, got %g", w.ObstacleSpeed)
	case w.GapHalfHeight <= 0:
		return invalid("gap half height must be positive, got %g", w.GapHalfHeight)
	case w.GapSpan <= 0:
		return invalid("gap span must be positive, got %d", w.GapSpan)
	case w.GapMin < 0 || float64(w.GapMin+w.GapSpan) > w.Height:
		return invalid("gap centers [%d, %d) fall outside the world", w.GapMin, w.GapMin+w.GapSpan)
	case w.CraftX < 0 || w.CraftX > w.Width:
		return invalid("craft x %g outside the world", w.CraftX)
	case w.CraftHalfWidth < 0:
		return invalid("craft half width must not be negative, got %g", w.CraftHalfWidth)
	case w.SpawnY < 0 || w.SpawnY > w.Height:
		return invalid("spawn height %g outside the world", w.SpawnY)
	}
	return nil
}

// ValidateDifficulty checks the progression settings that drive the
// obstacle speed after the first tick.
func ValidateDifficulty(d config.DifficultyConfig) error {
	switch {
	case !finite(d.InitialLevel, d.Scaling.SpeedMultiplier):
		return invalid("difficulty values must be finite numbers")
	case d.InitialLevel < 0 || d.InitialLevel > 1:
		return invalid("difficulty initial level must be within [0, 1], got %g", d.InitialLevel)
	case d.Scaling.SpeedMultiplier < 0:
		return invalid("difficulty speed multiplier must not be negative, got %g", d.Scaling.SpeedMultiplier)
	}

	switch d.Progression.Type {
	case "none":
	case "score", "time":
		if d.Progression.MaxAt <= 0 {
			return invalid("difficulty max_at must be positive, got %d", d.Progression.MaxAt)
		}
	default:
		return invalid("unknown difficulty progression %q (want score, time or none)", d.Progression.Type)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("copter: %s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
