package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/zertz"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusErr
)

var statusStyles = map[statusKind]lipgloss.Style{
	statusInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	statusOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	statusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one table.
type Model struct {
	session    *Session
	layout     layout
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	focus      Focus
	cell       zertz.QR
	pileIndex  [3]int
	status     string
	statusKind statusKind
	statusSeq  int
	quitting   bool
}

// NewModel creates a table model driving the given session.
func NewModel(session *Session, cfg core.RuntimeConfig) Model {
	st := session.State()
	l := newLayout(st.Board().Radius(), st.NumBalls()).fit(cfg.ScreenW)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session: session,
		layout:  l,
		screen:  core.NewScreen(l.width, l.height),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		cell:    l.center(),
		status:  "Select a ball, then a cell or a pile. Select an empty cell twice to remove it.",
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("zertz - " + m.session.Variant().Title)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.mouseClick(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout = m.layout.fit(msg.Width)
		m.screen.Resize(m.layout.width, m.layout.height)
		return m, nil

	case clearStatusMsg:
		if int(msg) == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleAction applies one semantic input.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.session.Finish()
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionNextFocus:
		m.focus = m.focus.Next()
		return m, nil

	case core.ActionPrevFocus:
		m.focus = m.focus.Prev()
		return m, nil

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveCursor(a)
		return m, nil

	case core.ActionCancel:
		if _, ok := m.session.Pending(); ok {
			m.session.Cancel()
			return m.setStatus(statusInfo, "Selection cleared")
		}
		return m, nil

	case core.ActionUndo:
		if m.session.Click(controller.UndoTarget()) == controller.Success {
			m.clampCursors()
			return m.setStatus(statusOK, "Undid the last command")
		}
		return m.setStatus(statusErr, "Nothing to undo")

	case core.ActionClick:
		return m.click()
	}

	return m, nil
}

// moveCursor moves the cursor of the focused region.
func (m *Model) moveCursor(a core.Action) {
	if p, ok := m.focus.Pile(); ok {
		size := m.session.State().Pile(p).Len()
		m.pileIndex[p] = movePile(m.pileIndex[p], size, a)
		return
	}
	m.cell = m.layout.moveCell(m.cell, a)
}

// click sends the object under the cursor to the controller.
func (m Model) click() (tea.Model, tea.Cmd) {
	st := m.session.State()
	src, hasSrc := m.session.Pending()

	t, ok := m.targetAtCursor(st, hasSrc)
	if !ok {
		return m.setStatus(statusErr, "The pile is empty")
	}

	switch m.session.Click(t) {
	case controller.Selected:
		return m.setStatus(statusInfo, "Selected "+describe(st, t))
	case controller.Success:
		m.clampCursors()
		return m.setStatus(statusOK, describeDone(st, src, t))
	default:
		return m.setStatus(statusErr, "Not allowed")
	}
}

// mouseClick moves the cursor to the object at (x, y) and clicks it.
// Clicking a pile's label or free space only selects the pile itself, which
// needs a pending selection.
func (m Model) mouseClick(x, y int) (tea.Model, tea.Cmd) {
	f, cell, index, ok := m.layout.hit(x, y)
	if !ok {
		return m, nil
	}

	m.focus = f
	p, isPile := f.Pile()
	if !isPile {
		m.cell = cell
		return m.click()
	}

	_, pending := m.session.Pending()
	size := m.session.State().Pile(p).Len()
	if index >= 0 && index < size {
		m.pileIndex[p] = index
	} else if !pending {
		return m, nil
	}
	return m.click()
}

// targetAtCursor returns the object under the cursor.
// On the board an occupied cell yields its ball. In a pile the cursor ball is
// the target, unless a selection is pending, in which case the pile itself is.
func (m Model) targetAtCursor(st zertz.GameState, pending bool) (controller.Target, bool) {
	if p, ok := m.focus.Pile(); ok {
		if pending {
			return controller.PileTarget(p), true
		}
		ids := st.Pile(p).IDs()
		if len(ids) == 0 {
			return controller.Target{}, false
		}
		return controller.BallTarget(ids[clampIndex(m.pileIndex[p], len(ids))]), true
	}

	board := st.Board()
	if board.InBounds(m.cell) {
		if id, ok := board.Cell(m.cell).Occupant(); ok {
			return controller.BallTarget(id), true
		}
	}
	return controller.CellTarget(m.cell), true
}

// clampCursors keeps pile cursors inside their piles after the state changed.
func (m *Model) clampCursors() {
	st := m.session.State()
	for _, p := range zertz.Piles {
		m.pileIndex[p] = clampIndex(m.pileIndex[p], st.Pile(p).Len())
	}
}

func (m Model) setStatus(kind statusKind, text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	return m, clearStatusCmd(m.statusSeq)
}

// describe names a target for the status line.
func describe(st zertz.GameState, t controller.Target) string {
	switch t.Kind {
	case controller.KindBall:
		if st.HasBall(t.Ball) {
			return fmt.Sprintf("ball %d (%s)", t.Ball, st.Ball(t.Ball).Color())
		}
		return fmt.Sprintf("ball %d", t.Ball)
	case controller.KindPile:
		return t.Pile.String()
	case controller.KindCell:
		return "cell " + t.Cell.String()
	default:
		return t.Kind.String()
	}
}

// describeDone reports a successful src -> dst action.
func describeDone(st zertz.GameState, src, dst controller.Target) string {
	if src.Kind == controller.KindCell {
		return "Removed " + describe(st, src)
	}
	return fmt.Sprintf("Moved %s to %s", describe(st, src), describe(st, dst))
}

// viewState collects what drawTable needs from the model.
func (m Model) viewState() viewState {
	pending, hasPending := m.session.Pending()
	v := m.session.Variant()
	return viewState{
		title:      fmt.Sprintf("Z E R T Z   %s   move %d", v.Title, m.session.Depth()-1),
		focus:      m.focus,
		cell:       m.cell,
		pileIndex:  m.pileIndex,
		pending:    pending,
		hasPending: hasPending,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawTable(m.screen, m.layout, m.session.State(), m.viewState())

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n\n")
	b.WriteString(statusStyles[m.statusKind].Render(" " + m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" " + m.help.View(m.keys)))
	return b.String()
}

// Session returns the session driven by this model.
func (m Model) Session() *Session {
	return m.session
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}
