package zertz

import (
	"fmt"

	"github.com/vovakirdan/zertz/internal/registry"
)

// Setup describes the initial position: board radius and the number of
// balls of each color, all of which start in the table pile.
type Setup struct {
	Radius int
	White  int
	Grey   int
	Black  int
}

// StandardSetup returns the default setup: radius 3, 6 white, 8 grey, 10 black.
func StandardSetup() Setup {
	return Setup{Radius: 3, White: 6, Grey: 8, Black: 10}
}

// SetupFromVariant converts a registered variant into a Setup.
func SetupFromVariant(v registry.Variant) Setup {
	return Setup{Radius: v.Radius, White: v.White, Grey: v.Grey, Black: v.Black}
}

// Validate checks that the setup can build a board.
func (s Setup) Validate() error {
	if s.Radius < 1 {
		return fmt.Errorf("zertz: radius must be at least 1, got %d", s.Radius)
	}
	if s.White < 0 || s.Grey < 0 || s.Black < 0 {
		return fmt.Errorf("zertz: ball counts must not be negative (%d/%d/%d)", s.White, s.Grey, s.Black)
	}
	return nil
}

// initialState builds the first snapshot. Balls are numbered in color order:
// whites first, then greys, then blacks.
func (s Setup) initialState() GameState {
	state := GameState{board: NewBoard(s.Radius)}
	for i := range state.piles {
		state.piles[i] = NewPile()
	}

	addBalls := func(n int, color Color) {
		for range n {
			id := BallID(len(state.balls))
			state.balls = append(state.balls, newBall(id, color, InPile{Pile: Table}))
			// Fresh IDs are never already present.
			_ = state.piles[Table].Add(id)
		}
	}

	addBalls(s.White, White)
	addBalls(s.Grey, Grey)
	addBalls(s.Black, Black)
	return state
}

func init() {
	registry.Register(registry.Variant{
		ID:     "standard",
		Title:  "Standard",
		Radius: 3,
		White:  6,
		Grey:   8,
		Black:  10,
	})
	registry.Register(registry.Variant{
		ID:     "blitz",
		Title:  "Blitz",
		Radius: 3,
		White:  5,
		Grey:   7,
		Black:  9,
	})
}
