package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 25) {
		t.Error("bottom-right edge is exclusive")
	}
}

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "player crossing a wide bar",
			a:        NewRectF(100, 100, 30, 40),
			b:        NewRectF(90, 95, 60, 10),
			expected: true,
		},
		{
			name:     "touching edges",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(9.5, 9.5, 4, 4),
			expected: true,
		},
		{
			name:     "separated vertically",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(0, 10.01, 10, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFTranslateAndCenter(t *testing.T) {
	r := NewRectF(10, -50, 20, 10).Translate(0, 80)

	if r.Y != 30 {
		t.Errorf("Translate() Y = %f, expected 30", r.Y)
	}
	c := r.Center()
	if c.X != 20 || c.Y != 35 {
		t.Errorf("Center() = %+v, expected (20, 35)", c)
	}
}

func TestVec(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", v.Len())
	}

	sum := v.Add(V(1, 1)).Sub(V(2, 2)).Scale(2)
	if sum.X != 4 || sum.Y != 6 {
		t.Errorf("Add/Sub/Scale = %+v, expected (4, 6)", sum)
	}

	up := FromAngle(-math.Pi / 2)
	if math.Abs(up.X) > 1e-12 || math.Abs(up.Y+1) > 1e-12 {
		t.Errorf("FromAngle(-pi/2) = %+v, expected (0, -1)", up)
	}
	if math.Abs(V(0, -2).Angle()+math.Pi/2) > 1e-12 {
		t.Errorf("Angle() = %f, expected -pi/2", V(0, -2).Angle())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return 5")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return 10")
	}
}
