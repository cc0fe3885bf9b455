package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"apart vertically", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"shared vertical edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"shared horizontal edge", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"one unit overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
		{"bullet inside enemy column only", NewRect(100, 200, 5, 15), NewRect(95, 50, 40, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFIntersects(t *testing.T) {
	bird := RectF{X: 180, Y: 100, W: 40, H: 30}

	tests := []struct {
		name     string
		other    RectF
		expected bool
	}{
		{"overlap", RectF{X: 210, Y: 0, W: 60, H: 110}, true},
		{"touching right edge", RectF{X: 220, Y: 0, W: 60, H: 600}, false},
		{"touching top", RectF{X: 180, Y: 0, W: 60, H: 100}, false},
		{"fractional overlap", RectF{X: 219.5, Y: 0, W: 60, H: 600}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bird.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge", 30, 25, false},
		{"left of box", 5, 15, false},
		{"below box", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (25, 25)", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, lo, hi, expected int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %f", got)
	}
}

func TestScale(t *testing.T) {
	if got := Scale(200, 400, 40); got != 20 {
		t.Errorf("Scale(200, 400, 40) = %d, expected 20", got)
	}
	if got := Scale(5, 0, 40); got != 0 {
		t.Errorf("Scale with empty range = %d, expected 0", got)
	}
}
