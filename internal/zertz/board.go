package zertz

import "fmt"

// Cell is one slot of the board grid.
// An absent cell never holds a ball.
type Cell struct {
	Present  bool
	occupant BallID
	occupied bool
}

// Occupant returns the ball on the cell and true if the cell is occupied.
func (c Cell) Occupant() (BallID, bool) {
	return c.occupant, c.occupied
}

// Empty reports whether the cell is present and holds no ball.
func (c Cell) Empty() bool {
	return c.Present && !c.occupied
}

func (c *Cell) place(id BallID) {
	c.occupant = id
	c.occupied = true
}

func (c *Cell) vacate() {
	c.occupant = 0
	c.occupied = false
}

// Board is a (2N+1)×(2N+1) grid with a hexagonal mask.
// Cells are stored in row-major order: index = q*size + r.
type Board struct {
	radius int
	size   int
	cells  []Cell
}

// NewBoard creates a flat-sided hexagonal board of the given radius.
// The two corners of the bounding square that fall outside the hexagon are
// marked absent and stay absent for the rest of the game.
func NewBoard(n int) Board {
	size := 2*n + 1
	b := Board{
		radius: n,
		size:   size,
		cells:  make([]Cell, size*size),
	}
	for q := 0; q < size; q++ {
		for r := 0; r < size; r++ {
			outside := (r < n && q < n-r) || (r > n && q > 3*n-r)
			b.cells[q*size+r].Present = !outside
		}
	}
	return b
}

// Radius returns the hexagon parameter N.
func (b Board) Radius() int {
	return b.radius
}

// Size returns the side length of the bounding grid (2N+1).
func (b Board) Size() int {
	return b.size
}

// InBounds returns true if c indexes a slot of the grid.
func (b Board) InBounds(c QR) bool {
	return c.Q >= 0 && c.Q < b.size && c.R >= 0 && c.R < b.size
}

// CellAt returns the cell at row q, column r.
// Panics if the coordinate is outside the grid; callers validate first.
func (b Board) CellAt(q, r int) Cell {
	return b.cells[b.index(QR{q, r})]
}

// Cell is CellAt for a coordinate value.
func (b Board) Cell(c QR) Cell {
	return b.cells[b.index(c)]
}

// PresentCells returns the coordinates of every present cell, row by row.
func (b Board) PresentCells() []QR {
	coords := make([]QR, 0, len(b.cells))
	for q := 0; q < b.size; q++ {
		for r := 0; r < b.size; r++ {
			if b.cells[q*b.size+r].Present {
				coords = append(coords, QR{q, r})
			}
		}
	}
	return coords
}

// CountPresent returns the number of present cells.
func (b Board) CountPresent() int {
	count := 0
	for _, cell := range b.cells {
		if cell.Present {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{
		radius: b.radius,
		size:   b.size,
		cells:  cells,
	}
}

// Equal returns true if two boards have the same dimensions and contents.
func (b Board) Equal(other Board) bool {
	if b.size != other.size || b.radius != other.radius {
		return false
	}
	for i, cell := range b.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) index(c QR) int {
	if !b.InBounds(c) {
		panic(fmt.Sprintf("zertz: cell %v outside %dx%d board", c, b.size, b.size))
	}
	return c.Q*b.size + c.R
}

// cell returns a pointer for in-package mutation of a cloned board.
func (b *Board) cell(c QR) *Cell {
	return &b.cells[b.index(c)]
}
