package copter

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// fixedRand always yields the same draw, clamped to the requested range.
type fixedRand struct{ n int }

func (r fixedRand) Intn(n int) int { return r.n % n }

func newTestEngine(t *testing.T, w WorldConfig) *Engine {
	t.Helper()
	e, err := NewEngine(w, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

// calmWorld has no gravity so the craft holds its height.
func calmWorld() WorldConfig {
	w := DefaultWorld()
	w.Gravity = 0
	return w
}

func TestNewEngineInitialState(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)
	snap := e.Snapshot()

	if snap.CraftY != 50 || snap.CraftVelocity != 0 {
		t.Errorf("craft starts at (%f, %f), expected (50, 0)", snap.CraftY, snap.CraftVelocity)
	}
	if snap.Score != 0 || snap.Crashes != 0 || snap.Terminal {
		t.Errorf("session should start clean, got %+v", snap)
	}
	if len(snap.Obstacles) != 5 {
		t.Fatalf("expected 5 obstacles, got %d", len(snap.Obstacles))
	}
	for i, o := range snap.Obstacles {
		wantX := 100 + float64(i)*30
		if o.X != wantX {
			t.Errorf("obstacle %d at x=%f, expected %f", i, o.X, wantX)
		}
		if o.GapCenter < 20 || o.GapCenter >= 80 {
			t.Errorf("obstacle %d gap center %f outside [20, 80)", i, o.GapCenter)
		}
	}
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	if _, err := NewEngine(DefaultWorld(), nil); err == nil {
		t.Error("NewEngine() should require a random source")
	}

	w := DefaultWorld()
	w.MaxCrashes = 0
	_, err := NewEngine(w, fixedRand{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewEngine() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestTickAppliesGravity(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)

	e.Tick()

	snap := e.Snapshot()
	if snap.CraftVelocity != w.Gravity {
		t.Errorf("velocity after one tick = %f, expected %f", snap.CraftVelocity, w.Gravity)
	}
	if snap.CraftY != w.SpawnY+w.Gravity {
		t.Errorf("position after one tick = %f, expected %f", snap.CraftY, w.SpawnY+w.Gravity)
	}
	if snap.Tick != 1 {
		t.Errorf("tick = %d, expected 1", snap.Tick)
	}
}

func TestLiftImpulseAssignsVelocity(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)
	e.craft.Velocity = 1.7

	e.ApplyLiftImpulse()
	if e.craft.Velocity != -w.LiftForce {
		t.Fatalf("velocity after lift = %f, expected %f", e.craft.Velocity, -w.LiftForce)
	}

	e.Tick()
	want := -w.LiftForce + w.Gravity
	if e.craft.Velocity != want {
		t.Errorf("velocity after lift and tick = %f, expected %f", e.craft.Velocity, want)
	}
	if e.craft.Y != w.SpawnY+want {
		t.Errorf("position after lift and tick = %f, expected %f", e.craft.Y, w.SpawnY+want)
	}
}

func TestVelocityNeverExceedsMaxSpeed(t *testing.T) {
	w := DefaultWorld()
	w.MaxCrashes = 1000000
	e := newTestEngine(t, w)

	for i := 0; i < 2000; i++ {
		if i%97 == 0 {
			e.ApplyLiftImpulse()
		}
		e.Tick()
		if e.craft.Velocity > w.MaxSpeed {
			t.Fatalf("tick %d: velocity %f exceeds max %f", i, e.craft.Velocity, w.MaxSpeed)
		}
	}
}

func TestObstacleRecycle(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)
	e.field.obstacles[0].X = 0.1

	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if x := e.field.obstacles[0].X; x >= 0 || x < -w.ObstacleWidth {
		t.Fatalf("obstacle should still be on its way out, x=%f", x)
	}

	e.Tick()
	o := e.field.obstacles[0]
	if o.X != w.Width {
		t.Errorf("recycled obstacle at x=%f, expected %f", o.X, w.Width)
	}
	if o.GapCenter < 20 || o.GapCenter >= 80 {
		t.Errorf("recycled gap center %f outside [20, 80)", o.GapCenter)
	}
	if o.Scored {
		t.Error("recycled obstacle should not be marked scored")
	}
}

func TestCrashLimitEndsSession(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)

	for i := 0; i < w.MaxCrashes-1; i++ {
		e.craft.Y = w.Height + 10
		if !e.Tick() {
			t.Fatalf("out-of-bounds tick %d should report a crash", i)
		}
		if e.craft.Y != w.SpawnY || e.craft.Velocity != 0 {
			t.Fatalf("craft should respawn after crash %d, got (%f, %f)", i+1, e.craft.Y, e.craft.Velocity)
		}
	}

	snap := e.Snapshot()
	if snap.Crashes != w.MaxCrashes-1 || snap.Terminal {
		t.Fatalf("expected %d crashes and a live session, got %d terminal=%v", w.MaxCrashes-1, snap.Crashes, snap.Terminal)
	}

	e.craft.Y = -10
	e.Tick()

	frozen := e.Snapshot()
	if !frozen.Terminal {
		t.Fatal("reaching the crash limit should end the session")
	}
	if frozen.Crashes != w.MaxCrashes {
		t.Errorf("crashes = %d, expected %d", frozen.Crashes, w.MaxCrashes)
	}
	if frozen.CraftY >= 0 {
		t.Errorf("craft should stay frozen at its failure height, got %f", frozen.CraftY)
	}

	for i := 0; i < 10; i++ {
		e.ApplyLiftImpulse()
		if e.Tick() {
			t.Error("terminal tick should not report a crash")
		}
	}
	if after := e.Snapshot(); !reflect.DeepEqual(after, frozen) {
		t.Errorf("terminal state changed:\n before %+v\n after  %+v", frozen, after)
	}
}

func TestCrashKeepsScoreAndObstacles(t *testing.T) {
	w := calmWorld()
	e := newTestEngine(t, w)
	e.session.Score = 7
	before := e.Snapshot().Obstacles

	e.craft.Y = -1
	e.Tick()

	snap := e.Snapshot()
	if snap.Score != 7 {
		t.Errorf("score after crash = %d, expected 7", snap.Score)
	}
	for i := range before {
		if snap.Obstacles[i].X != before[i].X-w.ObstacleSpeed {
			t.Errorf("obstacle %d should keep scrolling through a crash", i)
		}
	}
}

func TestBoundsCrashThenRespawnInsideWall(t *testing.T) {
	w := DefaultWorld()
	e := newTestEngine(t, w)
	e.craft.Y = -1
	// After scrolling to x=20 the wall covers the craft band and its
	// gap [10, 30] excludes the spawn height
	e.field.obstacles[0] = Obstacle{X: 20.5, GapCenter: 20}

	if !e.Tick() {
		t.Fatal("Tick() should report a crash")
	}

	snap := e.Snapshot()
	if snap.Crashes != 2 {
		t.Errorf("crashes = %d, expected 2 (bounds, then wall at respawn)", snap.Crashes)
	}
	if snap.CraftY != w.SpawnY || snap.CraftVelocity != 0 {
		t.Errorf("craft at (%f, %f), expected respawn (%f, 0)", snap.CraftY, snap.CraftVelocity, w.SpawnY)
	}
	if snap.Terminal {
		t.Error("two crashes should not end a 50 crash session")
	}
}

func TestTerminalBoundsCrashFreezesTick(t *testing.T) {
	w := DefaultWorld()
	w.MaxCrashes = 1
	e := newTestEngine(t, w)
	before := e.Snapshot()

	e.craft.Y = -1
	if !e.Tick() {
		t.Fatal("Tick() should report a crash")
	}

	snap := e.Snapshot()
	if !snap.Terminal || snap.Crashes != 1 {
		t.Fatalf("expected terminal after one crash, got %+v", snap)
	}
	if snap.CraftY != -1+w.Gravity {
		t.Errorf("craft should freeze where it failed, y=%f", snap.CraftY)
	}
	if snap.RotorPhase != before.RotorPhase {
		t.Errorf("rotor advanced on the terminal tick: %f -> %f", before.RotorPhase, snap.RotorPhase)
	}
	if !reflect.DeepEqual(snap.Obstacles, before.Obstacles) {
		t.Errorf("obstacles moved on the terminal tick:\n%+v\n%+v", before.Obstacles, snap.Obstacles)
	}
}

func TestPassingThroughGap(t *testing.T) {
	w := calmWorld()
	e := newTestEngine(t, w)
	e.field.obstacles[0] = Obstacle{X: 26, GapCenter: 50}

	crashes := 0
	for e.field.obstacles[0].X > 5 {
		if e.Tick() {
			crashes++
		}
	}

	if crashes != 0 {
		t.Errorf("flying through the gap recorded %d crashes", crashes)
	}
	if got := e.Snapshot().Score; got != 1 {
		t.Errorf("score after one passage = %d, expected 1", got)
	}
}

func TestHittingWall(t *testing.T) {
	w := calmWorld()
	e := newTestEngine(t, w)
	e.field.obstacles[0] = Obstacle{X: 25.2, GapCenter: 20}

	if !e.Tick() {
		t.Fatal("overlapping a wall outside the gap should crash")
	}
	snap := e.Snapshot()
	if snap.Crashes != 1 {
		t.Errorf("crashes = %d, expected 1", snap.Crashes)
	}
	if snap.CraftY != w.SpawnY {
		t.Errorf("craft should respawn at %f, got %f", w.SpawnY, snap.CraftY)
	}
}

func TestOneObstacleCrashPerTick(t *testing.T) {
	w := calmWorld()
	e := newTestEngine(t, w)
	e.field.obstacles[0] = Obstacle{X: 16, GapCenter: 20}
	e.field.obstacles[1] = Obstacle{X: 18, GapCenter: 75}

	e.Tick()

	if got := e.Snapshot().Crashes; got != 1 {
		t.Errorf("two simultaneous hits recorded %d crashes, expected 1", got)
	}
}

func TestCrashCountMonotonic(t *testing.T) {
	w := DefaultWorld()
	w.MaxCrashes = 1000000
	e := newTestEngine(t, w)

	last := 0
	for i := 0; i < 5000; i++ {
		if i%40 == 0 {
			e.ApplyLiftImpulse()
		}
		e.Tick()
		snap := e.Snapshot()
		if snap.Crashes < last {
			t.Fatalf("tick %d: crashes went from %d to %d", i, last, snap.Crashes)
		}
		if len(snap.Obstacles) != w.ObstacleCount {
			t.Fatalf("tick %d: obstacle count %d, expected %d", i, len(snap.Obstacles), w.ObstacleCount)
		}
		last = snap.Crashes
	}
}

func TestRestartRestoresInitialState(t *testing.T) {
	w := DefaultWorld()
	w.MaxCrashes = 3
	e := newTestEngine(t, w)

	for i := 0; i < 500; i++ {
		e.Tick()
	}
	if !e.Terminal() {
		t.Fatal("free fall should exhaust a 3 crash budget")
	}

	e.Restart()
	snap := e.Snapshot()

	if snap.CraftY != w.SpawnY || snap.CraftVelocity != 0 || snap.RotorPhase != 0 {
		t.Errorf("craft not reset: %+v", snap)
	}
	if snap.Score != 0 || snap.Crashes != 0 || snap.Terminal || snap.Tick != 0 {
		t.Errorf("session not reset: %+v", snap)
	}
	for i, o := range snap.Obstacles {
		if o.X != w.Width+float64(i)*w.ObstacleSpacing {
			t.Errorf("obstacle %d not back in its initial slot: x=%f", i, o.X)
		}
	}
}

func TestRestartMidSession(t *testing.T) {
	e := newTestEngine(t, DefaultWorld())
	for i := 0; i < 30; i++ {
		e.Tick()
	}

	e.Restart()
	if e.Snapshot().Tick != 0 {
		t.Error("restart mid-session should reset the tick counter")
	}
	e.Tick()
	if e.Terminal() {
		t.Error("restarted session should be live")
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e, err := NewEngine(DefaultWorld(), rand.New(rand.NewSource(12345)))
		if err != nil {
			t.Fatalf("NewEngine() failed: %v", err)
		}
		for i := 0; i < 3000; i++ {
			if i%25 == 0 {
				e.ApplyLiftImpulse()
			}
			e.Tick()
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestSpeedFunc(t *testing.T) {
	e := newTestEngine(t, calmWorld())
	x := e.field.obstacles[4].X

	e.SetSpeedFunc(func(score int, tick uint64) float64 { return 2 })
	e.Tick()
	if got := e.field.obstacles[4].X; got != x-2 {
		t.Errorf("obstacle moved to %f, expected %f", got, x-2)
	}

	e.SetSpeedFunc(nil)
	e.Tick()
	if got := e.field.obstacles[4].X; got != x-2-0.5 {
		t.Errorf("nil speed func should restore base speed, x=%f", got)
	}
}

func TestRotorAdvances(t *testing.T) {
	e := newTestEngine(t, calmWorld())
	e.Tick()
	e.Tick()
	if got := e.Snapshot().RotorPhase; got != 20 {
		t.Errorf("rotor phase = %f, expected 20", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, DefaultWorld())
	snap := e.Snapshot()
	snap.Obstacles[0].X = -999

	if e.field.obstacles[0].X == -999 {
		t.Error("mutating a snapshot must not reach the engine")
	}
}
