package copter

// ObstacleView is the read-only projection of one obstacle.
type ObstacleView struct {
	X         float64 `json:"x" yaml:"x"`
	GapCenter float64 `json:"gap_center" yaml:"gap_center"`
}

// Snapshot is an immutable copy of the simulation state for presentation,
// spectators and replay checks.
type Snapshot struct {
	Tick          uint64         `json:"tick" yaml:"tick"`
	CraftY        float64        `json:"craft_y" yaml:"craft_y"`
	CraftVelocity float64        `json:"craft_velocity" yaml:"craft_velocity"`
	RotorPhase    float64        `json:"rotor_phase" yaml:"rotor_phase"`
	Obstacles     []ObstacleView `json:"obstacles" yaml:"obstacles"`
	Score         int            `json:"score" yaml:"score"`
	Crashes       int            `json:"crashes" yaml:"crashes"`
	MaxCrashes    int            `json:"max_crashes" yaml:"max_crashes"`
	Terminal      bool           `json:"terminal" yaml:"terminal"`
}

// Snapshot copies the current state. The result shares no memory with
// the engine.
func (e *Engine) Snapshot() Snapshot {
	obs := e.field.Obstacles()
	views := make([]ObstacleView, len(obs))
	for i, o := range obs {
		views[i] = ObstacleView{X: o.X, GapCenter: o.GapCenter}
	}

	return Snapshot{
		Tick:          e.tick,
		CraftY:        e.craft.Y,
		CraftVelocity: e.craft.Velocity,
		RotorPhase:    e.craft.RotorPhase,
		Obstacles:     views,
		Score:         e.session.Score,
		Crashes:       e.session.Crashes,
		MaxCrashes:    e.world.MaxCrashes,
		Terminal:      e.session.Terminal,
	}
}
