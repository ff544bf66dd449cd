// Package zertz implements the game-state engine for a Zertz-like marble game:
// a hexagonal board of removable rings, three ball piles and a linear undo
// history of immutable snapshots.
//
// It contains no platform dependencies so the rules stay pure and testable;
// rendering and input live in the platform packages.
package zertz

import "fmt"

// QR is an axial coordinate identifying a board cell.
// Q selects the grid row and R the column.
type QR struct {
	Q, R int
}

// String returns a string representation of the coordinate.
func (c QR) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// BallID identifies a ball for the lifetime of an engine.
// IDs are dense, starting at 0.
type BallID int

// PileID identifies one of the three fixed ball piles.
type PileID int

const (
	Player1 PileID = iota
	Player2
	Table

	pileCount = 3
)

// Piles lists every pile in display order.
var Piles = []PileID{Table, Player1, Player2}

// Valid reports whether p names one of the fixed piles.
func (p PileID) Valid() bool {
	return p >= 0 && p < pileCount
}

// String returns a human-readable name for the pile.
func (p PileID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	case Table:
		return "Table"
	default:
		return "Unknown"
	}
}

// Color is the immutable color of a ball.
type Color int

const (
	White Color = iota
	Grey
	Black
)

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Grey:
		return "Grey"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}
