// Package core holds the types shared by every game and front-end: geometry,
// input frames, the render buffer and the shuffle helper. It has no
// dependencies outside the standard library so game rules stay easy to test.
package core

// Rect is an integer axis-aligned box in play-field units.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether the boxes overlap on both axes.
// Boxes that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Contains reports whether the point lies inside the box.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the centre point, rounded down.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// RectF is the float counterpart of Rect, used where positions integrate
// velocity.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the exclusive right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Intersects uses the same strict overlap rule as Rect.Intersects.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Scale maps v from a [0, from) range onto [0, to).
func Scale(v, from, to int) int {
	if from <= 0 {
		return 0
	}
	return v * to / from
}
