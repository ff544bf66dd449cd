package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
)

// AppConfig configures the picker -> table flow.
type AppConfig struct {
	Runtime core.RuntimeConfig
	// SkipMenu starts the table for Runtime.Variant directly.
	SkipMenu bool
	// Resolve turns a variant ID into the variant to play, applying any
	// configured overrides. Defaults to registry.Get.
	Resolve func(id string) (registry.Variant, error)
	Store   *storage.Store
	Logger  *log.Logger
	User    string
	// OnStart is called when a table is created.
	OnStart func(*Session)
}

// AppModel manages the full flow of a connection: variant picker, then table.
// This is the top-level model used both locally and for SSH sessions.
type AppModel struct {
	cfg      AppConfig
	menu     MenuModel
	table    *Model
	err      error
	quitting bool
}

// NewAppModel creates the top-level model. When the menu is skipped the
// table is started right away; a failure to start it ends the program on Init.
func NewAppModel(cfg AppConfig) AppModel {
	if cfg.Resolve == nil {
		cfg.Resolve = registry.Get
	}
	m := AppModel{
		cfg:  cfg,
		menu: NewMenuModel(cfg.Runtime),
	}
	if cfg.SkipMenu {
		m, _ = m.startTable(cfg.Runtime.Variant)
	}
	return m
}

// Init starts the table when it already exists.
func (m AppModel) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	if m.table != nil {
		return m.table.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	if m.quitting {
		return m, nil
	}
	if m.table != nil {
		return m.updateTable(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		m.cfg.Runtime = m.menu.Config()
		return m.startTable(selected.ID)
	}

	return m, cmd
}

// startTable creates the session and its table model.
func (m AppModel) startTable(id string) (AppModel, tea.Cmd) {
	v, err := m.cfg.Resolve(id)
	if err == nil {
		var s *Session
		s, err = NewSession(SessionConfig{
			Variant: v,
			User:    m.cfg.User,
			Store:   m.cfg.Store,
			Logger:  m.cfg.Logger,
		})
		if err == nil {
			if m.cfg.OnStart != nil {
				m.cfg.OnStart(s)
			}
			table := NewModel(s, m.cfg.Runtime)
			m.table = &table
			return m, table.Init()
		}
	}

	m.err = fmt.Errorf("cannot start %q: %w", id, err)
	m.quitting = true
	return m, tea.Quit
}

// updateTable handles updates when a table is running.
func (m AppModel) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.table.Update(msg)
	if table, ok := newModel.(Model); ok {
		m.table = &table
	}

	if m.table.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.table != nil {
		return m.table.View()
	}
	return m.menu.View()
}

// Session returns the running session, or nil before a variant was picked.
func (m AppModel) Session() *Session {
	if m.table == nil {
		return nil
	}
	return m.table.Session()
}

// Err returns the error that ended the flow, if any.
func (m AppModel) Err() error {
	return m.err
}

// RunApp runs the picker -> table flow in the local terminal and records the
// session when the program ends.
func RunApp(cfg AppConfig) error {
	p := tea.NewProgram(
		NewAppModel(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(AppModel)
	if !ok {
		return nil
	}
	if s := m.Session(); s != nil {
		s.Finish()
	}
	return m.Err()
}
