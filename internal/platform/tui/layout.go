package tui

import (
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/zertz"
)

// Layout constants
const (
	marginX      = 2 // Left margin of the board and piles
	boardTop     = 2 // First board row, below the title
	cellStep     = 4 // Horizontal distance between cells in a row
	ballsPerLine = 12
	minWidth     = 44
)

// Focus is the region of the table the cursor is in.
type Focus int

const (
	FocusBoard Focus = iota
	FocusTable
	FocusPlayer1
	FocusPlayer2

	focusCount = 4
)

// String returns a human-readable name for the focus.
func (f Focus) String() string {
	if p, ok := f.Pile(); ok {
		return p.String()
	}
	return "Board"
}

// Pile returns the pile shown in this region.
func (f Focus) Pile() (zertz.PileID, bool) {
	switch f {
	case FocusTable:
		return zertz.Table, true
	case FocusPlayer1:
		return zertz.Player1, true
	case FocusPlayer2:
		return zertz.Player2, true
	default:
		return 0, false
	}
}

// focusOf returns the focus region showing pile p.
func focusOf(p zertz.PileID) Focus {
	switch p {
	case zertz.Table:
		return FocusTable
	case zertz.Player1:
		return FocusPlayer1
	default:
		return FocusPlayer2
	}
}

// Next returns the following region, wrapping around.
func (f Focus) Next() Focus {
	return (f + 1) % focusCount
}

// Prev returns the preceding region, wrapping around.
func (f Focus) Prev() Focus {
	return (f + focusCount - 1) % focusCount
}

// layout positions the board and the piles on the screen.
// Row q of the board is shifted by two columns per row so that the axial
// rows form a hexagon.
type layout struct {
	shape        zertz.Board // Full board, used for the outline and navigation
	pileRows     int         // Ball lines reserved for each pile
	pilesTop     int
	contentWidth int // Narrowest width that fits the board and the piles
	width        int
	height       int
	boardSpan    int
}

// newLayout computes positions for a board of the given radius holding numBalls.
func newLayout(radius, numBalls int) layout {
	shape := zertz.NewBoard(radius)
	size := shape.Size()

	rows := (numBalls + ballsPerLine - 1) / ballsPerLine
	if rows < 1 {
		rows = 1
	}

	l := layout{
		shape:     shape,
		pileRows:  rows,
		pilesTop:  boardTop + size + 1,
		boardSpan: cellStep*(size-1) + 3,
	}

	l.contentWidth = max(marginX*2+l.boardSpan, marginX*2+ballsPerLine*cellStep, minWidth)
	l.width = l.contentWidth
	l.height = l.pilesTop + len(zertz.Piles)*(rows+1)
	return l
}

// fit returns the layout stretched to a terminal of the given width.
// The table never gets narrower than its content.
func (l layout) fit(termWidth int) layout {
	l.width = max(l.contentWidth, termWidth)
	return l
}

// boardRect is the frame drawn around the board, one line above the first
// row and one below the last.
func (l layout) boardRect() core.Rect {
	return core.NewRect(0, boardTop-1, l.width, l.shape.Size()+2)
}

// pileRect covers a pile's label line and its ball lines.
func (l layout) pileRect(p zertz.PileID) core.Rect {
	return core.NewRect(0, l.pileLabelY(p), l.width, l.pileRows+1)
}

// hit maps a screen position to the region under it.
// For the board it returns the cell whose brackets cover (x, y). For a pile
// it returns the ball slot under (x, y), or -1 on the label line or the
// margin.
func (l layout) hit(x, y int) (f Focus, cell zertz.QR, index int, ok bool) {
	if l.boardRect().Inner().Contains(x, y) {
		for _, c := range l.shape.PresentCells() {
			cx, cy := l.cellPos(c)
			if core.NewRect(cx, cy, 3, 1).Contains(x, y) {
				return FocusBoard, c, 0, true
			}
		}
		return FocusBoard, zertz.QR{}, 0, false
	}

	for _, p := range zertz.Piles {
		r := l.pileRect(p)
		if !r.Contains(x, y) {
			continue
		}
		index = -1
		if y > r.Y && x >= marginX && x < marginX+ballsPerLine*cellStep {
			index = (y-r.Y-1)*ballsPerLine + (x-marginX)/cellStep
		}
		return focusOf(p), zertz.QR{}, index, true
	}
	return FocusBoard, zertz.QR{}, 0, false
}

// cellPos returns the screen position of the left bracket of a cell.
func (l layout) cellPos(c zertz.QR) (x, y int) {
	n := l.shape.Radius()
	return marginX + cellStep*c.R + 2*c.Q - 2*n, boardTop + c.Q
}

// pileLabelY returns the line of a pile's label.
func (l layout) pileLabelY(p zertz.PileID) int {
	for i, id := range zertz.Piles {
		if id == p {
			return l.pilesTop + i*(l.pileRows+1)
		}
	}
	return l.pilesTop
}

// ballPos returns the screen position of the index-th ball of a pile.
func (l layout) ballPos(p zertz.PileID, index int) (x, y int) {
	return marginX + cellStep*(index%ballsPerLine), l.pileLabelY(p) + 1 + index/ballsPerLine
}

// inShape reports whether c is part of the board outline.
func (l layout) inShape(c zertz.QR) bool {
	return l.shape.InBounds(c) && l.shape.Cell(c).Present
}

// center returns the middle cell of the board.
func (l layout) center() zertz.QR {
	n := l.shape.Radius()
	return zertz.QR{Q: n, R: n}
}

// moveCell moves the board cursor one step.
// Left and right walk along the row; up and down jump to the cell of the
// neighbouring row that is visually closest.
func (l layout) moveCell(from zertz.QR, a core.Action) zertz.QR {
	switch a {
	case core.ActionLeft, core.ActionRight:
		step := 1
		if a == core.ActionLeft {
			step = -1
		}
		next := zertz.QR{Q: from.Q, R: from.R + step}
		if l.inShape(next) {
			return next
		}
	case core.ActionUp, core.ActionDown:
		q := from.Q + 1
		if a == core.ActionUp {
			q = from.Q - 1
		}
		if best, ok := l.nearestInRow(q, from); ok {
			return best
		}
	}
	return from
}

// nearestInRow returns the cell in row q whose column is closest to from.
// Ties go to the left cell.
func (l layout) nearestInRow(q int, from zertz.QR) (zertz.QR, bool) {
	fx, _ := l.cellPos(from)
	var best zertz.QR
	bestDist := -1
	for r := range l.shape.Size() {
		c := zertz.QR{Q: q, R: r}
		if !l.inShape(c) {
			continue
		}
		x, _ := l.cellPos(c)
		d := x - fx
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

// movePile moves a pile cursor one step and clamps it to the pile size.
func movePile(index, size int, a core.Action) int {
	switch a {
	case core.ActionLeft:
		index--
	case core.ActionRight:
		index++
	case core.ActionUp:
		index -= ballsPerLine
	case core.ActionDown:
		index += ballsPerLine
	}
	return clampIndex(index, size)
}

// clampIndex keeps an index inside [0, size-1], or 0 for an empty pile.
func clampIndex(index, size int) int {
	if size == 0 {
		return 0
	}
	return core.Clamp(index, 0, size-1)
}
