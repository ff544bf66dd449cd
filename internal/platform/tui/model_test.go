package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
	"github.com/vovakirdan/zertz/internal/zertz"
)

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func standardVariant(t *testing.T) registry.Variant {
	t.Helper()
	v, err := registry.Get("standard")
	if err != nil {
		t.Fatalf("registry.Get: %v", err)
	}
	return v
}

func newTestSession(t *testing.T, store *storage.Store) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{Variant: standardVariant(t), Store: store})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keyEnter, core.ActionClick},
		{runeKey(' '), core.ActionClick},
		{keyTab, core.ActionNextFocus},
		{keyShiftTab, core.ActionPrevFocus},
		{keyEsc, core.ActionCancel},
		{keyRight, core.ActionRight},
		{runeKey('w'), core.ActionUp},
		{runeKey('u'), core.ActionUndo},
		{runeKey('?'), core.ActionHelp},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelMoveBallFromTableToBoard(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())

	// Select the first table ball, then the center cell.
	m = press(t, m, keyTab, keyEnter)
	if got, ok := s.Pending(); !ok || got != controller.BallTarget(0) {
		t.Fatalf("pending = %+v, %v; want ball 0", got, ok)
	}
	if !strings.Contains(m.status, "ball 0 (White)") {
		t.Errorf("status = %q", m.status)
	}

	m = press(t, m, keyShiftTab, keyEnter)
	at, ok := s.State().Ball(0).OnBoard()
	if !ok || at != (zertz.QR{Q: 3, R: 3}) {
		t.Fatalf("ball 0 on board = %v, %v; want (3,3)", at, ok)
	}
	if m.statusKind != statusOK {
		t.Errorf("status kind = %v, want ok (%q)", m.statusKind, m.status)
	}

	// Undo restores the initial snapshot.
	m = press(t, m, runeKey('u'))
	if _, ok := s.State().Ball(0).Pile(); !ok {
		t.Error("ball 0 should be back in a pile after undo")
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}

	m = press(t, m, runeKey('u'))
	if m.statusKind != statusErr {
		t.Errorf("second undo status kind = %v, want error", m.statusKind)
	}
}

func TestModelMoveBallToPile(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())

	// Table: move right to ball 1, select it, then drop it on Player 1.
	m = press(t, m, keyTab, keyRight, keyEnter, keyTab, keyEnter)

	st := s.State()
	if p, ok := st.Ball(1).Pile(); !ok || p != zertz.Player1 {
		t.Fatalf("ball 1 pile = %v, %v; want Player 1", p, ok)
	}
	if st.Pile(zertz.Table).Len() != 23 {
		t.Errorf("table size = %d, want 23", st.Pile(zertz.Table).Len())
	}

	// Selecting the moved ball from Player 1 and dropping it back on the
	// same pile is rejected.
	m = press(t, m, keyEnter, keyEnter)
	if m.statusKind != statusErr {
		t.Errorf("status kind = %v, want error", m.statusKind)
	}
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
}

func TestModelRemoveCell(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())

	m = press(t, m, keyDown, keyEnter, keyEnter)

	target := zertz.QR{Q: 4, R: 2}
	if s.State().Board().Cell(target).Present {
		t.Fatalf("cell %v should be removed (status %q)", target, m.status)
	}
	if !strings.HasPrefix(m.status, "Removed cell") {
		t.Errorf("status = %q", m.status)
	}
	if st := s.Stats(); st.CellsRemoved != 1 || st.Applied != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestModelCancelAndEmptyPile(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())

	m = press(t, m, keyEnter, keyEsc)
	if _, ok := s.Pending(); ok {
		t.Error("Esc should clear the pending selection")
	}

	// Player 1 is empty: nothing to select.
	m = press(t, m, keyTab, keyTab, keyEnter)
	if _, ok := s.Pending(); ok {
		t.Error("clicking an empty pile should not select anything")
	}
	if m.statusKind != statusErr {
		t.Errorf("status kind = %v, want error", m.statusKind)
	}
}

func TestModelStatusExpires(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())
	m = press(t, m, keyEnter)

	seq := m.statusSeq
	next, _ := m.Update(clearStatusMsg(seq - 1))
	m = next.(Model)
	if m.status == "" {
		t.Error("stale timer cleared a newer status")
	}

	next, _ = m.Update(clearStatusMsg(seq))
	m = next.(Model)
	if m.status != "" {
		t.Errorf("status = %q, want cleared", m.status)
	}
}

func TestModelQuitRecordsSession(t *testing.T) {
	store := openTestStore(t)
	s := newTestSession(t, store)
	m := NewModel(s, core.DefaultConfig())

	m = press(t, m, keyTab, keyEnter, keyShiftTab, keyEnter, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("model should be quitting")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
	if !s.Saved() {
		t.Fatal("session should be saved on quit")
	}

	rec, err := store.SessionByID(s.ID())
	if err != nil {
		t.Fatalf("SessionByID: %v", err)
	}
	if rec == nil {
		t.Fatal("session not found")
	}
	if rec.Applied != 1 || rec.FinalDepth != 2 || rec.Variant != "standard" {
		t.Errorf("record = %+v", rec)
	}
}

func TestModelView(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())

	out := m.View()
	for _, want := range []string{"Z E R T Z", "Standard", "Table (24)", "Player 2 (0)", "undo"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModelMouseClicks(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.DefaultConfig())
	center := zertz.QR{Q: 3, R: 3}
	cx, cy := m.layout.cellPos(center)

	// Empty pile without a selection: nothing happens.
	m = send(t, m, leftClick(3, 14))
	if _, ok := s.Pending(); ok || m.focus != FocusPlayer1 {
		t.Fatalf("pending = %v, focus = %v", ok, m.focus)
	}

	m = send(t, m, leftClick(3, 11), leftClick(cx+1, cy))
	if at, ok := s.State().Ball(0).OnBoard(); !ok || at != center {
		t.Fatalf("ball 0 on board = %v, %v; want %v", at, ok, center)
	}
	if m.focus != FocusBoard || m.cell != center {
		t.Errorf("cursor = %v %v, want board %v", m.focus, m.cell, center)
	}

	// Ball on the board, then the Player 2 label.
	m = send(t, m, leftClick(cx, cy), leftClick(4, 16))
	if p, ok := s.State().Ball(0).Pile(); !ok || p != zertz.Player2 {
		t.Fatalf("ball 0 pile = %v, %v; want Player 2", p, ok)
	}

	// Other buttons and releases are ignored.
	m = send(t, m, tea.MouseMsg{X: 3, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if _, ok := s.Pending(); ok {
		t.Error("a release should not select anything")
	}
	if s.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", s.Depth())
	}
}

func TestModelResize(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s, core.RuntimeConfig{})
	if m.screen.Width() != 52 {
		t.Fatalf("initial width = %d, want 52", m.screen.Width())
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.screen.Width() != 100 || m.screen.Height() != m.layout.height {
		t.Errorf("screen = %dx%d after widening", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "Z E R T Z") {
		t.Error("view should redraw after a resize")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if m.screen.Width() != 52 {
		t.Errorf("width = %d, want content width 52", m.screen.Width())
	}
}
