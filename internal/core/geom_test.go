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
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        Rect{X: ToFixed(10) - 1, Y: 0, W: ToFixed(5), H: ToFixed(5)},
			expected: true,
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

func TestRectAround(t *testing.T) {
	r := RectAround(V(100, 300), ToFixed(32), ToFixed(32))

	if r.X != ToFixed(84) || r.Y != ToFixed(284) {
		t.Errorf("RectAround() origin = (%d, %d), expected (84, 284)", r.X.Units(), r.Y.Units())
	}
	if r.Center() != V(100, 300) {
		t.Errorf("Center() = %+v, expected (100, 300)", r.Center())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%+v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(5, 10, 20, 15).Translate(V(3, -4))
	if r != NewRect(8, 6, 20, 15) {
		t.Errorf("Translate() = %+v", r)
	}
	if r.Right() != ToFixed(28) || r.Bottom() != ToFixed(21) {
		t.Errorf("edges = (%d, %d), expected (28, 21)", r.Right().Units(), r.Bottom().Units())
	}
}

func TestFixedConversions(t *testing.T) {
	if ToFixed(3) != 3000 {
		t.Errorf("ToFixed(3) = %d", ToFixed(3))
	}
	if FixedFromFloat(1.5) != 1500 {
		t.Errorf("FixedFromFloat(1.5) = %d, expected 1500", FixedFromFloat(1.5))
	}
	if FixedFromFloat(0.0004) != 0 {
		t.Errorf("FixedFromFloat(0.0004) = %d, expected 0", FixedFromFloat(0.0004))
	}
	if Fixed(-2500).Units() != -2 {
		t.Errorf("Units() should truncate toward zero")
	}
	if Fixed(7).Div(0) != 0 {
		t.Error("Div(0) should be zero")
	}
	if d := V(0, 0).DistanceTo(V(3, 4)); math.Abs(d-5) > 1e-9 {
		t.Errorf("DistanceTo() = %f, expected 5", d)
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

	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF should clamp to max")
	}
	if ClampFixed(-3, 0, 10) != 0 {
		t.Error("ClampFixed should clamp to min")
	}
}

func TestActionFrame(t *testing.T) {
	var f ActionFrame
	if !f.Idle() {
		t.Error("zero frame should be idle")
	}

	f.Set(ActionLeft)
	f.Set(ActionInteract)
	f.Set(ActionCutLoop) // one-shot, not part of the frame

	if !f.Has(ActionLeft) || !f.Has(ActionInteract) {
		t.Errorf("frame lost held actions: %+v", f)
	}
	if f.Has(ActionCutLoop) || f.Has(ActionUp) {
		t.Errorf("frame has unexpected actions: %+v", f)
	}
	if ActionCutLoop.Held() || !ActionDown.Held() {
		t.Error("Held() classification is wrong")
	}
}
