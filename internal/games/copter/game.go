// Package copter implements a helicopter-style cave flyer.
// The craft falls under gravity, lifts on demand, and must thread the gaps
// of scrolling walls. Crashes respawn the craft until the crash budget runs out.
package copter

import (
	"math/rand"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadWorld resolves the copter configuration with an optional preset
// and validates the resulting world.
func LoadWorld(path string, preset config.DifficultyPreset) (WorldConfig, config.CopterConfig, error) {
	cfg, err := config.LoadCopter(path)
	if err != nil {
		return WorldConfig{}, cfg, err
	}
	if preset != "" {
		config.ApplyCopterPreset(&cfg, preset)
	}
	w := WorldFromConfig(cfg)
	if err := w.Validate(); err != nil {
		return w, cfg, err
	}
	if err := ValidateDifficulty(cfg.Difficulty); err != nil {
		return w, cfg, err
	}
	return w, cfg, nil
}

// Game adapts an Engine to the arcade platform: it maps input actions to
// engine operations, handles pausing and draws snapshots.
type Game struct {
	engine     *Engine
	cfg        config.CopterConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	paused     bool
	configErr  error
}

// New creates a new Copter game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "copter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Copter"
}

// Reset builds a fresh engine seeded from the runtime config.
// An unusable config file falls back to the built-in tuning; the error is
// kept for the host to report.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	world, cfg, err := LoadWorld(configPath, difficultyPreset)
	g.configErr = err
	if err != nil {
		cfg = config.DefaultCopterConfig()
		world = WorldFromConfig(cfg)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	rng := rand.New(rand.NewSource(runtime.Seed))
	engine, err := NewEngine(world, rng)
	if err != nil {
		// WorldFromConfig(DefaultCopterConfig()) always validates
		panic(err)
	}

	base := world.ObstacleSpeed
	engine.SetSpeedFunc(func(score int, tick uint64) float64 {
		return g.difficulty.Speed(base, score, tick)
	})
	g.engine = engine
}

// ConfigErr returns the config problem found by the last Reset, if any.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step applies this frame's input and advances the engine by one tick.
// Restart is honored only after game over; lift only before it.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine.Terminal() {
		if in.Has(core.ActionRestart) {
			g.engine.Restart()
			g.paused = false
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.engine.ApplyLiftImpulse()
	}
	crashed := g.engine.Tick()

	return core.StepResult{State: g.State(), Crashed: crashed}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.engine.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Crashes:  snap.Crashes,
		Ticks:    snap.Tick,
		GameOver: snap.Terminal,
		Paused:   g.paused,
	}
}

// Snapshot returns a serializable copy of the simulation state.
func (g *Game) Snapshot() any {
	return g.engine.Snapshot()
}

// Register the game with the registry
func init() {
	registry.Register("copter", func() registry.Game {
		return New()
	})
}
