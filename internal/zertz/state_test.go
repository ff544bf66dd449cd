package zertz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(s *GameState)
	}{
		{
			name: "ball listed in two piles",
			corrupt: func(s *GameState) {
				require.NoError(t, s.piles[Player1].Add(0))
			},
		},
		{
			name: "orphan ball",
			corrupt: func(s *GameState) {
				require.NoError(t, s.piles[Table].Remove(0))
			},
		},
		{
			name: "cell without matching ball",
			corrupt: func(s *GameState) {
				s.board.cell(QR{3, 3}).place(0)
			},
		},
		{
			name: "ball on board without cell",
			corrupt: func(s *GameState) {
				require.NoError(t, s.piles[Table].Remove(0))
				s.balls[0].pos = OnBoard{At: QR{3, 3}}
			},
		},
		{
			name: "occupied absent cell",
			corrupt: func(s *GameState) {
				require.NoError(t, s.piles[Table].Remove(0))
				s.balls[0].pos = OnBoard{At: QR{0, 0}}
				s.board.cell(QR{0, 0}).place(0)
			},
		},
		{
			name: "stale pile index",
			corrupt: func(s *GameState) {
				s.piles[Table].index[1] = 5
			},
		},
		{
			name: "missing position",
			corrupt: func(s *GameState) {
				s.balls[2].pos = nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := StandardSetup().initialState()
			require.NoError(t, s.Validate())

			tc.corrupt(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := StandardSetup().initialState()
	c := s.Clone()

	c.detach(0)
	c.board.cell(QR{3, 3}).place(0)
	c.balls[0].pos = OnBoard{At: QR{3, 3}}

	require.NoError(t, s.Validate())
	require.NoError(t, c.Validate())
	assert.False(t, s.Equal(c))
	assert.True(t, s.Pile(Table).Contains(0))
	assert.True(t, s.Board().Cell(QR{3, 3}).Empty())
}

func TestPileAccessorUnknownPile(t *testing.T) {
	s := StandardSetup().initialState()
	assert.Equal(t, 0, s.Pile(PileID(9)).Len())
}
