package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
)

// Session browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show variant sidebar
	sidebarWidth       = 20  // Width of variant sidebar
	maxSessions        = 200 // Max sessions to load
)

// SessionsKeyMap defines the key bindings for the session browser.
type SessionsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.PrevVariant, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextVariant, k.PrevVariant, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for browsing recorded sessions.
type SessionsModel struct {
	variants    []registry.Variant
	cursor      int // Currently selected variant index
	all         []storage.SessionRecord
	sessions    []storage.SessionRecord // Sessions of the selected variant
	stats       *storage.VariantStats
	store       *storage.Store
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
	loadErr     error
}

// NewSessionsModel creates a session browser reading from store.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	m := SessionsModel{
		variants:    registry.List(),
		store:       store,
		keys:        DefaultSessionsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if store != nil {
		m.all, m.loadErr = store.RecentSessions(maxSessions)
	}
	m.selectVariant(0)
	return m
}

// createTable creates a new table with appropriate columns.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "User", Width: 10},
		{Title: "Moves", Width: 6},
		{Title: "Undo", Width: 5},
		{Title: "Rings", Width: 6},
		{Title: "Time", Width: 8},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if extra := tableWidth - 49 - 2*len(columns); extra > 0 {
		columns[1].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// selectVariant filters the loaded sessions for the variant at index i.
func (m *SessionsModel) selectVariant(i int) {
	m.sessions = nil
	m.stats = nil
	if len(m.variants) == 0 {
		m.updateTableRows()
		return
	}

	m.cursor = (i + len(m.variants)) % len(m.variants)
	id := m.variants[m.cursor].ID
	for _, r := range m.all {
		if r.Variant == id {
			m.sessions = append(m.sessions, r)
		}
	}
	if m.store != nil {
		if stats, err := m.store.GetVariantStats(id); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current sessions.
func (m *SessionsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, r := range m.sessions {
		user := r.User
		if user == "" {
			user = "local"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			user,
			fmt.Sprintf("%d", r.Applied),
			fmt.Sprintf("%d", r.Undone),
			fmt.Sprintf("%d", r.CellsRemoved),
			(time.Duration(r.Duration) * time.Second).String(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the session browser.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextVariant):
			m.selectVariant(m.cursor + 1)
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			m.selectVariant(m.cursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the session browser.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SESSIONS"
	if len(m.variants) > 0 {
		title = fmt.Sprintf("SESSIONS - %s", m.variants[m.cursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		if len(m.variants) > 0 {
			b.WriteString(centerText(fmt.Sprintf("< %s >", m.variants[m.cursor].Title), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the variant list.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Variants\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.variants {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.Title))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderStats renders the aggregate line for the selected variant.
func (m SessionsModel) renderStats() string {
	if m.stats == nil || m.stats.Sessions == 0 {
		return ""
	}
	return helpStyle.Render(fmt.Sprintf(
		"%d sessions, %d moves, %d undos, average %s, last played %s",
		m.stats.Sessions,
		m.stats.TotalApplied,
		m.stats.TotalUndone,
		(time.Duration(m.stats.AvgDuration) * time.Second).String(),
		m.stats.LastPlayed.Format("Jan 02 15:04"),
	))
}

// renderTableContent renders the table or an empty message.
func (m SessionsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No sessions database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load sessions:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nPlay a game to record one!")
	}
	return m.table.View()
}

// RunSessions runs the session browser.
func RunSessions(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewSessionsModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
