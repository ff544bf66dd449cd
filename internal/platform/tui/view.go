package tui

import (
	"fmt"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/zertz"
)

// Element colors
const (
	colorTitle   = core.ColorCyan
	colorRing    = core.ColorGray
	colorRemoved = core.ColorDarkGray
	colorCursor  = core.ColorYellow
	colorPending = core.ColorGreen
	colorLabel   = core.ColorWhite
	colorFrame   = core.ColorDarkGray
)

// viewState is what the table shows besides the game state itself.
type viewState struct {
	title      string
	focus      Focus
	cell       zertz.QR
	pileIndex  [3]int // Cursor per PileID
	pending    controller.Target
	hasPending bool
}

// ballGlyph returns the letter and color used for a ball.
func ballGlyph(c zertz.Color) (rune, core.Color) {
	switch c {
	case zertz.White:
		return 'W', core.ColorBrightWhite
	case zertz.Grey:
		return 'G', core.ColorGray
	case zertz.Black:
		return 'B', core.ColorBlue
	default:
		return '?', core.ColorRed
	}
}

// drawTable renders the title, the framed board and the three piles.
func drawTable(s *core.Screen, l layout, st zertz.GameState, v viewState) {
	s.Clear()
	s.DrawTextCentered(0, v.title, colorTitle)
	s.DrawBox(l.boardRect(), colorFrame)
	drawBoard(s, l, st, v)
	for _, p := range zertz.Piles {
		drawPile(s, l, st, p, v)
	}
}

func drawBoard(s *core.Screen, l layout, st zertz.GameState, v viewState) {
	board := st.Board()
	for _, c := range l.shape.PresentCells() {
		x, y := l.cellPos(c)
		cell := board.Cell(c)

		if !cell.Present {
			s.SetColored(x+1, y, '·', colorRemoved)
		} else {
			s.SetColored(x, y, '(', colorRing)
			s.SetColored(x+2, y, ')', colorRing)
			if id, ok := cell.Occupant(); ok {
				g, col := ballGlyph(st.Ball(id).Color())
				s.SetColored(x+1, y, g, col)
			}
		}

		switch {
		case v.focus == FocusBoard && v.cell == c:
			drawBrackets(s, x, y, '[', ']', colorCursor)
		case isPendingCell(st, v, c):
			drawBrackets(s, x, y, '<', '>', colorPending)
		}
	}
}

func drawPile(s *core.Screen, l layout, st zertz.GameState, p zertz.PileID, v viewState) {
	pile := st.Pile(p)
	focused := false
	if fp, ok := v.focus.Pile(); ok && fp == p {
		focused = true
	}

	labelColor := colorLabel
	if focused {
		labelColor = colorCursor
	}
	s.DrawTextColored(marginX, l.pileLabelY(p), fmt.Sprintf("%s (%d)", p, pile.Len()), labelColor)

	cursor := clampIndex(v.pileIndex[p], pile.Len())
	for i, id := range pile.IDs() {
		x, y := l.ballPos(p, i)
		g, col := ballGlyph(st.Ball(id).Color())
		s.SetColored(x+1, y, g, col)

		switch {
		case focused && i == cursor:
			drawBrackets(s, x, y, '[', ']', colorCursor)
		case v.hasPending && v.pending.Kind == controller.KindBall && v.pending.Ball == id:
			drawBrackets(s, x, y, '<', '>', colorPending)
		}
	}

	if focused && pile.Len() == 0 {
		x, y := l.ballPos(p, 0)
		drawBrackets(s, x, y, '[', ']', colorCursor)
	}
}

// isPendingCell reports whether the pending selection is cell c or the ball on it.
func isPendingCell(st zertz.GameState, v viewState, c zertz.QR) bool {
	if !v.hasPending {
		return false
	}
	switch v.pending.Kind {
	case controller.KindCell:
		return v.pending.Cell == c
	case controller.KindBall:
		if !st.HasBall(v.pending.Ball) {
			return false
		}
		at, ok := st.Ball(v.pending.Ball).OnBoard()
		return ok && at == c
	}
	return false
}

func drawBrackets(s *core.Screen, x, y int, left, right rune, c core.Color) {
	s.SetColored(x, y, left, c)
	s.SetColored(x+2, y, right, c)
}
