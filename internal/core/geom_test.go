package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, want 12", r.Right())
	}
	if r.Bottom() != 7 {
		t.Errorf("Bottom() = %d, want 7", r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 3, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectInner(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"frame", NewRect(0, 1, 10, 9), NewRect(1, 2, 8, 7)},
		{"one line", NewRect(4, 4, 5, 1), NewRect(4, 4, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inner(); got != tt.want {
				t.Errorf("Inner() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if NewRect(4, 4, 5, 1).Inner().Contains(4, 4) {
		t.Error("empty inner region should contain nothing")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionClick.String() != "Click" {
		t.Errorf("ActionClick.String() = %q", ActionClick.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
