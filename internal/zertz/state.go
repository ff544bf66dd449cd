package zertz

import (
	"errors"
	"fmt"
)

// GameState is one immutable snapshot: board, balls and piles.
// Accessors return copies, so a published snapshot cannot be changed
// through the values it hands out.
type GameState struct {
	board Board
	balls []Ball
	piles [pileCount]Pile
}

// Board returns the board of the snapshot.
// Board has no exported mutators, so the value is safe to share.
func (s GameState) Board() Board {
	return s.board
}

// NumBalls returns the number of balls in the game.
func (s GameState) NumBalls() int {
	return len(s.balls)
}

// HasBall reports whether id names a ball of this game.
func (s GameState) HasBall(id BallID) bool {
	return id >= 0 && int(id) < len(s.balls)
}

// Ball returns the ball with the given ID.
// Panics if id is not a ball of this game; check HasBall first.
func (s GameState) Ball(id BallID) Ball {
	return s.balls[id]
}

// Balls returns a copy of all balls, indexed by ID.
func (s GameState) Balls() []Ball {
	out := make([]Ball, len(s.balls))
	copy(out, s.balls)
	return out
}

// Pile returns a copy of the given pile.
func (s GameState) Pile(id PileID) Pile {
	if !id.Valid() {
		return NewPile()
	}
	return s.piles[id].Clone()
}

// Clone returns a deep copy of the snapshot, ready to be mutated.
func (s GameState) Clone() GameState {
	c := GameState{
		board: s.board.Clone(),
		balls: s.Balls(),
	}
	for i := range s.piles {
		c.piles[i] = s.piles[i].Clone()
	}
	return c
}

// Equal returns true if two snapshots describe the same position.
func (s GameState) Equal(other GameState) bool {
	if !s.board.Equal(other.board) || len(s.balls) != len(other.balls) {
		return false
	}
	for i, b := range s.balls {
		if b != other.balls[i] {
			return false
		}
	}
	for i := range s.piles {
		if !s.piles[i].Equal(other.piles[i]) {
			return false
		}
	}
	return true
}

// Validate checks the snapshot invariants: every ball is in exactly one
// place, pile indexes are consistent, and board occupants agree with ball
// positions.
func (s GameState) Validate() error {
	var errs []error

	for i := range s.piles {
		if err := s.piles[i].validate(); err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", PileID(i), err))
		}
	}

	for q := 0; q < s.board.size; q++ {
		for r := 0; r < s.board.size; r++ {
			cell := s.board.CellAt(q, r)
			id, ok := cell.Occupant()
			if !ok {
				continue
			}
			at := QR{q, r}
			if !cell.Present {
				errs = append(errs, fmt.Errorf("absent cell %v holds ball %d", at, id))
				continue
			}
			if !s.HasBall(id) {
				errs = append(errs, fmt.Errorf("cell %v holds unknown ball %d", at, id))
				continue
			}
			if pos, onBoard := s.balls[id].OnBoard(); !onBoard || pos != at {
				errs = append(errs, fmt.Errorf("cell %v holds ball %d positioned at %v", at, id, s.balls[id].pos))
			}
		}
	}

	for i, b := range s.balls {
		id := BallID(i)
		if b.id != id {
			errs = append(errs, fmt.Errorf("ball at index %d has id %d", i, b.id))
		}

		holders := 0
		for p := range s.piles {
			if s.piles[p].Contains(id) {
				holders++
			}
		}

		switch pos := b.pos.(type) {
		case InPile:
			if !pos.Pile.Valid() || !s.piles[pos.Pile].Contains(id) {
				errs = append(errs, fmt.Errorf("ball %d claims %v but is not listed there", id, pos.Pile))
			}
			if holders != 1 {
				errs = append(errs, fmt.Errorf("ball %d listed in %d piles", id, holders))
			}
		case OnBoard:
			if !s.board.InBounds(pos.At) {
				errs = append(errs, fmt.Errorf("ball %d positioned off the grid at %v", id, pos.At))
				break
			}
			if occ, ok := s.board.Cell(pos.At).Occupant(); !ok || occ != id {
				errs = append(errs, fmt.Errorf("ball %d claims cell %v but the cell disagrees", id, pos.At))
			}
			if holders != 0 {
				errs = append(errs, fmt.Errorf("ball %d on board but listed in %d piles", id, holders))
			}
		default:
			errs = append(errs, fmt.Errorf("ball %d has no position", id))
		}
	}

	return errors.Join(errs...)
}

// detach clears the ball's current location: its board cell or its pile.
func (s *GameState) detach(id BallID) {
	switch pos := s.balls[id].pos.(type) {
	case OnBoard:
		s.board.cell(pos.At).vacate()
	case InPile:
		// Position and pile membership always agree, so Remove cannot fail.
		_ = s.piles[pos.Pile].Remove(id)
	}
}
