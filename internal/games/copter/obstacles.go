package copter

import (
	"github.com/vovakirdan/tui-copter/internal/core"
)

// Rand is the random source used for gap placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Obstacle is a vertical wall with a passable gap.
type Obstacle struct {
	X         float64 // Leading (left) edge
	GapCenter float64 // Vertical center of the gap
	Scored    bool    // Counted for the current passage
}

// Footprint returns the obstacle's horizontal extent.
func (o Obstacle) Footprint(w WorldConfig) core.Span {
	return core.Span{Lo: o.X, Hi: o.X + w.ObstacleWidth}
}

// Gap returns the passable vertical band.
func (o Obstacle) Gap(w WorldConfig) core.Span {
	return core.NewSpan(o.GapCenter, w.GapHalfHeight)
}

// ObstacleField owns a fixed number of obstacles. Indexes are stable:
// recycling rewrites an obstacle in place and never reorders the slice.
type ObstacleField struct {
	obstacles []Obstacle
	rng       Rand
	world     WorldConfig
}

// NewObstacleField creates a field laid out for a fresh session.
func NewObstacleField(w WorldConfig, rng Rand) *ObstacleField {
	f := &ObstacleField{
		obstacles: make([]Obstacle, w.ObstacleCount),
		rng:       rng,
		world:     w,
	}
	f.Reset()
	return f
}

// Reset lays obstacles out past the right edge at a fixed interval,
// each with a fresh gap.
func (f *ObstacleField) Reset() {
	for i := range f.obstacles {
		f.obstacles[i] = Obstacle{
			X:         f.world.Width + float64(i)*f.world.ObstacleSpacing,
			GapCenter: f.randomGap(),
		}
	}
}

// Advance scrolls every obstacle left by speed and recycles the ones that
// left the world. It returns how many obstacles were passed this tick.
func (f *ObstacleField) Advance(speed, craftX float64) int {
	passed := 0
	for i := range f.obstacles {
		o := &f.obstacles[i]
		o.X -= speed

		// Leading edge behind the craft, trailing edge still ahead of it
		if !o.Scored && o.X < craftX && o.X+f.world.ObstacleWidth > craftX {
			o.Scored = true
			passed++
		}

		if o.X < -f.world.ObstacleWidth {
			o.X = f.world.Width
			o.GapCenter = f.randomGap()
			o.Scored = false
		}
	}
	return passed
}

// Obstacles returns the live obstacle slice. Callers must not modify it.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

func (f *ObstacleField) randomGap() float64 {
	return float64(f.world.GapMin + f.rng.Intn(f.world.GapSpan))
}
