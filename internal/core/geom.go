// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is a closed interval [Lo, Hi] on one world axis.
type Span struct {
	Lo, Hi float64
}

// NewSpan returns the span centered on c with the given half extent.
func NewSpan(c, half float64) Span {
	return Span{Lo: c - half, Hi: c + half}
}

// Len returns the length of the span.
func (s Span) Len() float64 {
	return s.Hi - s.Lo
}

// Overlaps reports whether the open interiors of two spans intersect.
// Spans that only touch at an endpoint do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Hi > other.Lo && s.Lo < other.Hi
}

// Contains reports whether v lies within the span, endpoints included.
func (s Span) Contains(v float64) bool {
	return v >= s.Lo && v <= s.Hi
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
