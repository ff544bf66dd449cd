// Package core provides the drawing primitives of the terminal table: a
// colored character screen, screen rectangles and semantic input actions.
// Nothing here imports Bubble Tea, so drawing stays testable with plain
// values.
package core

// Rect is a region of the screen in character cells. The right and bottom
// edges are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the region of w by h cells whose top-left cell is (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the region.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first line past the region.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether cell (x, y) lies in the region.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner returns the region inside a one-cell frame drawn on r.
// A region too small to hold anything inside yields an empty Rect.
func (r Rect) Inner() Rect {
	if r.W < 2 || r.H < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
