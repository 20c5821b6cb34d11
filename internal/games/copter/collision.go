package copter

import "github.com/vovakirdan/tui-copter/internal/core"

// craftFootprint is the fixed horizontal band the craft occupies.
func craftFootprint(w WorldConfig) core.Span {
	return core.NewSpan(w.CraftX, w.CraftHalfWidth)
}

// Collides reports whether a craft at height y hits obstacle o: the
// footprints overlap horizontally and y lies strictly outside the gap band.
func Collides(w WorldConfig, y float64, o Obstacle) bool {
	if !craftFootprint(w).Overlaps(o.Footprint(w)) {
		return false
	}
	return !o.Gap(w).Contains(y)
}

// Detect returns the index of the first obstacle the craft hits.
func Detect(w WorldConfig, y float64, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if Collides(w, y, o) {
			return i, true
		}
	}
	return -1, false
}

// Hits lists the indexes of every obstacle the craft hits.
func Hits(w WorldConfig, y float64, obstacles []Obstacle) []int {
	var hits []int
	for i, o := range obstacles {
		if Collides(w, y, o) {
			hits = append(hits, i)
		}
	}
	return hits
}
