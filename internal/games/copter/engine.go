package copter

import "errors"

// SpeedFunc returns the obstacle scroll speed for the current progress.
type SpeedFunc func(score int, tick uint64) float64

// Engine advances one copter session in discrete ticks. It owns all
// mutable simulation state; hosts read it through Snapshot.
//
// Engine is not safe for concurrent use.
type Engine struct {
	world   WorldConfig
	craft   Craft
	field   *ObstacleField
	session Session
	speed   SpeedFunc
	tick    uint64
}

// NewEngine validates the world and starts a fresh session.
func NewEngine(w WorldConfig, rng Rand) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("copter: random source is required")
	}

	e := &Engine{
		world: w,
		field: NewObstacleField(w, rng),
	}
	e.Restart()
	return e, nil
}

// Config returns the world constants.
func (e *Engine) Config() WorldConfig {
	return e.world
}

// SetSpeedFunc overrides the constant obstacle speed. Nil restores it.
func (e *Engine) SetSpeedFunc(f SpeedFunc) {
	e.speed = f
}

// Restart resets craft and session and lays out a new obstacle field.
// It may be called at any time, including mid-session.
func (e *Engine) Restart() {
	e.craft = Craft{}
	e.craft.respawn(e.world)
	e.session = Session{}
	e.field.Reset()
	e.tick = 0
}

// ApplyLiftImpulse sets the craft velocity to the lift impulse.
// It has no effect once the session is over.
func (e *Engine) ApplyLiftImpulse() {
	if e.session.Terminal {
		return
	}
	e.craft.lift(e.world)
}

// Tick advances the simulation by one step and reports whether a crash
// was recorded. A terminal session does not advance.
//
// Order: integrate, bounds check, scroll/score/recycle obstacles, obstacle
// collision, rotor. The first crash that ends the session stops the tick.
// At most one obstacle crash is recorded per tick.
func (e *Engine) Tick() bool {
	if e.session.Terminal {
		return false
	}
	e.tick++
	crashed := false

	e.craft.integrate(e.world)
	if e.craft.outOfBounds(e.world) {
		crashed = true
		e.session.recordCrash(&e.craft, e.world)
		if e.session.Terminal {
			return true
		}
	}

	e.session.Score += e.field.Advance(e.obstacleSpeed(), e.world.CraftX)

	if _, hit := Detect(e.world, e.craft.Y, e.field.Obstacles()); hit {
		crashed = true
		e.session.recordCrash(&e.craft, e.world)
		if e.session.Terminal {
			return true
		}
	}

	e.craft.spinRotor(e.world)
	return crashed
}

func (e *Engine) obstacleSpeed() float64 {
	if e.speed == nil {
		return e.world.ObstacleSpeed
	}
	return e.speed(e.session.Score, e.tick)
}

// Terminal reports whether the session has ended.
func (e *Engine) Terminal() bool {
	return e.session.Terminal
}
