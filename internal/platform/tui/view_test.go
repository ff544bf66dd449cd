package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/zertz"
)

func newTestEngine(t *testing.T) *zertz.Engine {
	t.Helper()
	e, err := zertz.New()
	if err != nil {
		t.Fatalf("zertz.New: %v", err)
	}
	return e
}

func drawState(st zertz.GameState, v viewState) (*core.Screen, layout) {
	l := newLayout(st.Board().Radius(), st.NumBalls())
	s := core.NewScreen(l.width, l.height)
	drawTable(s, l, st, v)
	return s, l
}

func TestDrawInitialTable(t *testing.T) {
	e := newTestEngine(t)
	s, _ := drawState(e.Latest(), viewState{title: "ZERTZ", focus: FocusPlayer2})

	// Title centered on the 52-column table.
	if got := strings.Index(s.Row(0), "ZERTZ"); got != 23 {
		t.Errorf("title column = %d, want 23 (row %q)", got, s.Row(0))
	}
	if c := s.GetCell(23, 0); c.Color != colorTitle {
		t.Errorf("title color = %v", c.Color)
	}
	if got := string([]rune(s.Row(2))[8:11]); got != "( )" {
		t.Errorf("top row first ring = %q, want %q", got, "( )")
	}

	// The board frame spans lines 1 to 9, right above the piles.
	frame := []struct {
		x, y int
		want rune
	}{
		{0, 1, '┌'}, {51, 1, '┐'}, {0, 9, '└'}, {51, 9, '┘'},
		{0, 5, '│'}, {20, 1, '─'},
	}
	for _, f := range frame {
		if got := s.Get(f.x, f.y); got != f.want {
			t.Errorf("frame at (%d, %d) = %q, want %q", f.x, f.y, got, f.want)
		}
	}
	if c := s.GetCell(0, 1); c.Color != colorFrame {
		t.Errorf("frame color = %v, want %v", c.Color, colorFrame)
	}
	if got := strings.Count(s.String(), "( )"); got != 37 {
		t.Errorf("empty rings drawn = %d, want 37", got)
	}
	if !strings.HasPrefix(s.Row(10), "  Table (24)") {
		t.Errorf("table label = %q", s.Row(10))
	}
	if !strings.HasPrefix(s.Row(13), "  Player 1 (0)") {
		t.Errorf("player 1 label = %q", s.Row(13))
	}

	// Ball 0 is white; ball 12 is grey and starts the second line.
	if s.Get(3, 11) != 'W' {
		t.Errorf("first table ball = %q, want 'W'", s.Get(3, 11))
	}
	if s.Get(3, 12) != 'G' {
		t.Errorf("thirteenth table ball = %q, want 'G'", s.Get(3, 12))
	}
	if c := s.GetCell(3, 11); c.Color != core.ColorBrightWhite {
		t.Errorf("white ball color = %v", c.Color)
	}

	// The empty focused pile still shows the cursor.
	if s.Get(2, 17) != '[' || s.Get(4, 17) != ']' {
		t.Errorf("empty pile cursor row = %q", s.Row(17))
	}
}

func TestDrawBallsAndRemovedCells(t *testing.T) {
	e := newTestEngine(t)
	center := zertz.QR{Q: 3, R: 3}
	corner := zertz.QR{Q: 0, R: 3}

	if !e.MoveBallToBoard(20, center) {
		t.Fatal("MoveBallToBoard failed")
	}
	if !e.RemoveCell(corner) {
		t.Fatal("RemoveCell failed")
	}

	s, l := drawState(e.Latest(), viewState{focus: FocusTable})

	x, y := l.cellPos(center)
	if got := string([]rune(s.Row(y))[x : x+3]); got != "(B)" {
		t.Errorf("center = %q, want %q", got, "(B)")
	}

	x, y = l.cellPos(corner)
	if s.Get(x, y) != ' ' || s.Get(x+1, y) != '·' {
		t.Errorf("removed cell = %q", string([]rune(s.Row(y))[x:x+3]))
	}
	if !strings.HasPrefix(s.Row(10), "  Table (23)") {
		t.Errorf("table label = %q", s.Row(10))
	}
}

func TestDrawCursorAndPending(t *testing.T) {
	e := newTestEngine(t)
	center := zertz.QR{Q: 3, R: 3}
	if !e.MoveBallToBoard(0, center) {
		t.Fatal("MoveBallToBoard failed")
	}

	tests := []struct {
		name        string
		v           viewState
		left, right rune
		color       core.Color
	}{
		{
			name:  "cursor on the board",
			v:     viewState{focus: FocusBoard, cell: center},
			left:  '[',
			right: ']',
			color: colorCursor,
		},
		{
			name: "pending ball on the board",
			v: viewState{
				focus:      FocusTable,
				pending:    controller.BallTarget(0),
				hasPending: true,
			},
			left:  '<',
			right: '>',
			color: colorPending,
		},
		{
			name:  "no selection",
			v:     viewState{focus: FocusTable},
			left:  '(',
			right: ')',
			color: colorRing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, l := drawState(e.Latest(), tt.v)
			x, y := l.cellPos(center)
			if s.Get(x, y) != tt.left || s.Get(x+2, y) != tt.right {
				t.Errorf("brackets = %q%q, want %q%q", s.Get(x, y), s.Get(x+2, y), tt.left, tt.right)
			}
			if c := s.GetCell(x, y).Color; c != tt.color {
				t.Errorf("bracket color = %v, want %v", c, tt.color)
			}
			if s.Get(x+1, y) != 'W' {
				t.Errorf("ball glyph = %q, want 'W'", s.Get(x+1, y))
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorRed)
	s.DrawTextColored(3, 0, "def", core.ColorDefault)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "def") {
		t.Errorf("rendered output lost text: %q", out)
	}
}
